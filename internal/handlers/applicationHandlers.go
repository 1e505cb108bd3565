package handlers

import (
	"net/http"

	"cutmevents/internal/models"
	"cutmevents/internal/services"
	"cutmevents/internal/utils"
)

type ApplicationHandler struct {
	service services.ApplicationService
}

func NewApplicationHandler(service services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

func (h *ApplicationHandler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var application models.Application
	if err := utils.DecodeJSON(r, &application); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	created, err := h.service.CreateApplication(r.Context(), application)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) GetApplications(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.ApplicationFilter{
		Status: models.ApplicationStatus(query.Get("status")),
		Type:   models.ApplicationType(query.Get("type")),
	}

	applications, err := h.service.GetApplications(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, applications)
}

func (h *ApplicationHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	applicationID, err := utils.ObjectIDFromVars(r, "id")
	if err != nil {
		utils.SendJSONError(w, "Not found", http.StatusNotFound)
		return
	}

	var update models.ApplicationStatusUpdate
	if err := utils.DecodeJSON(r, &update); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	updated, err := h.service.UpdateApplicationStatus(r.Context(), applicationID, update.Status)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}
