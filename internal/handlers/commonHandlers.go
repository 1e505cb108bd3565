package handlers

import (
	"net/http"

	"cutmevents/internal/database"
	"cutmevents/internal/utils"
)

const serviceName = "cutm-events-backend"

type CommonHandler struct {
	db database.Service
}

func NewCommonHandler(db database.Service) *CommonHandler {
	return &CommonHandler{db: db}
}

func (h *CommonHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := h.db.Health()
	status := http.StatusOK
	if _, failed := health["error"]; failed {
		status = http.StatusServiceUnavailable
	}
	utils.RespondWithJSON(w, status, health)
}
