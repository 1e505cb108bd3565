package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"cutmevents/internal/handlers"
	"cutmevents/internal/middlewares"
	"cutmevents/internal/utils"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.RequestLogger(log.Logger))
	r.Use(middlewares.Recover)
	r.Use(middlewares.Cors(s.cfg.AllowedOrigins))
	r.Use(middlewares.NewPrometheusMiddleware(s.registerer).Instrument)

	// mux only runs middleware on matched routes; keep CORS preflight and
	// JSON 404s consistent for everything else.
	r.NotFoundHandler = middlewares.Cors(s.cfg.AllowedOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, "Not found", http.StatusNotFound)
	}))
	r.MethodNotAllowedHandler = middlewares.Cors(s.cfg.AllowedOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.StatusHandler).Methods("GET")
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	s.registerAuthRoutes(api)
	s.registerItemRoutes(api)
	s.registerRegistrationRoutes(api)
	s.registerApplicationRoutes(api)
	s.registerUploadRoutes(api)

	return r
}

func (s *Server) adminOnly(h http.HandlerFunc) http.Handler {
	return middlewares.RequireRole(s.cfg.Auth.JWTSecret, utils.RoleAdmin)(h)
}

func (s *Server) registerAuthRoutes(r *mux.Router) {
	ah := handlers.NewAuthHandler(s.authService, s.cfg.IsProduction())

	r.HandleFunc("/auth/login", ah.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/request-otp", ah.RequestOTP).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/verify-otp", ah.VerifyOTP).Methods("POST", "OPTIONS")
}

func (s *Server) registerItemRoutes(r *mux.Router) {
	ih := handlers.NewItemHandler(s.itemService)

	r.HandleFunc("/items", ih.GetItems).Methods("GET", "OPTIONS")
	r.HandleFunc("/items/{id}", ih.GetItemByID).Methods("GET", "OPTIONS")
	r.Handle("/items", s.adminOnly(ih.CreateItem)).Methods("POST", "OPTIONS")
	r.Handle("/items/{id}", s.adminOnly(ih.UpdateItem)).Methods("PUT", "OPTIONS")
	r.Handle("/items/{id}", s.adminOnly(ih.DeleteItem)).Methods("DELETE", "OPTIONS")
}

func (s *Server) registerRegistrationRoutes(r *mux.Router) {
	rh := handlers.NewRegistrationHandler(s.registrationService)

	r.Handle("/registrations", middlewares.OptionalAuth(s.cfg.Auth.JWTSecret)(http.HandlerFunc(rh.CreateRegistration))).Methods("POST", "OPTIONS")
	r.Handle("/registrations", s.adminOnly(rh.GetRegistrations)).Methods("GET", "OPTIONS")
	r.Handle("/registrations/export", s.adminOnly(rh.ExportRegistrations)).Methods("GET", "OPTIONS")
}

func (s *Server) registerApplicationRoutes(r *mux.Router) {
	ah := handlers.NewApplicationHandler(s.applicationService)

	r.HandleFunc("/applications", ah.CreateApplication).Methods("POST", "OPTIONS")
	r.Handle("/applications", s.adminOnly(ah.GetApplications)).Methods("GET", "OPTIONS")
	r.Handle("/applications/{id}/status", s.adminOnly(ah.UpdateApplicationStatus)).Methods("PATCH", "OPTIONS")
}

func (s *Server) registerUploadRoutes(r *mux.Router) {
	uh := handlers.NewUploadHandler(s.uploadService)

	r.Handle("/uploads", s.adminOnly(uh.UploadImage)).Methods("POST", "OPTIONS")
}
