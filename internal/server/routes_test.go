package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"cutmevents/internal/config"
	"cutmevents/internal/models"
	"cutmevents/internal/repositories"
	"cutmevents/internal/services"
	"cutmevents/internal/utils"
)

const testSecret = "routes-secret"

// MockDBService is a mock implementation of database.Service for testing
type MockDBService struct{}

func (m *MockDBService) Health() map[string]string {
	return map[string]string{"message": "Mock DB is healthy"}
}

func (m *MockDBService) Client() *mongo.Client                   { return nil }
func (m *MockDBService) Database() *mongo.Database               { return nil }
func (m *MockDBService) EnsureIndexes(ctx context.Context) error { return nil }
func (m *MockDBService) Close() error                            { return nil }

type stubItemService struct {
	services.ItemService
}

func (stubItemService) GetItems(context.Context, models.ItemFilter) ([]models.Item, error) {
	return []models.Item{}, nil
}

func newTestServer() *Server {
	return &Server{
		cfg: config.Config{
			Env:            "test",
			AllowedOrigins: []string{"http://localhost:5173"},
			Auth:           config.AuthConfig{JWTSecret: testSecret},
		},
		db:            &MockDBService{},
		registerer:    prometheus.NewRegistry(),
		otpRepo:       repositories.NewOTPRepository(),
		itemService:   stubItemService{},
		uploadService: services.NewUploadService(nil),
	}
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWT(testSecret, role, "someone", time.Hour, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestStatusRoute(t *testing.T) {
	srv := httptest.NewServer(newTestServer().RegisterRoutes())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestRoutesEnforceAdmin(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	tests := []struct {
		method, path, auth string
		status             int
	}{
		{http.MethodGet, "/api/items", "", http.StatusOK},
		{http.MethodPost, "/api/items", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/items", bearer(t, utils.RoleUser), http.StatusForbidden},
		{http.MethodDelete, "/api/items/64b7f0c2a1b2c3d4e5f60718", bearer(t, utils.RoleUser), http.StatusForbidden},
		{http.MethodGet, "/api/registrations", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/registrations/export", bearer(t, utils.RoleUser), http.StatusForbidden},
		{http.MethodGet, "/api/applications", "", http.StatusUnauthorized},
		{http.MethodPatch, "/api/applications/64b7f0c2a1b2c3d4e5f60718/status", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/uploads", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.status, rr.Code)
		})
	}
}

func TestPreflightSkipsAuth(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	req := httptest.NewRequest(http.MethodOptions, "/api/items", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsRoute(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPurgeExpiredOTPs(t *testing.T) {
	s := newTestServer()
	s.otpRepo.Put("230101120161@cutm.ac.in", "123456", -2*otpPurgeGrace)
	s.otpRepo.Put("230101120162@cutm.ac.in", "123456", services.OTPTTL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.purgeExpiredOTPs(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.otpRepo.Len() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
