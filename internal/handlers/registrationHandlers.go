package handlers

import (
	"bytes"
	"net/http"

	"cutmevents/internal/middlewares"
	"cutmevents/internal/models"
	"cutmevents/internal/services"
	"cutmevents/internal/utils"
)

type RegistrationHandler struct {
	service services.RegistrationService
}

func NewRegistrationHandler(service services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

func (h *RegistrationHandler) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	var input models.RegistrationInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	var submittedBy string
	if claims, ok := middlewares.ClaimsFromContext(r.Context()); ok {
		submittedBy = claims.Identity()
	}

	registration, err := h.service.CreateRegistration(r.Context(), input, submittedBy)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, registration)
}

func (h *RegistrationHandler) GetRegistrations(w http.ResponseWriter, r *http.Request) {
	registrations, err := h.service.GetRegistrations(r.Context(), r.URL.Query().Get("itemId"))
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, registrations)
}

func (h *RegistrationHandler) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	// Buffered so a failure halfway can still become a JSON error.
	var buf bytes.Buffer
	if err := h.service.ExportRegistrationsCSV(r.Context(), r.URL.Query().Get("itemId"), &buf); err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="registrations.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
