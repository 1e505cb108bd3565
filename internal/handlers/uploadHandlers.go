package handlers

import (
	"errors"
	"net/http"

	"cutmevents/internal/services"
	"cutmevents/internal/utils"
)

// multipart overhead allowed on top of the image itself
const uploadFormSlack = 1 << 20

type UploadHandler struct {
	service services.UploadService
}

func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxImageSize+uploadFormSlack)
	if err := r.ParseMultipartForm(services.MaxImageSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.SendJSONError(w, "Image must be 5 MB or smaller", http.StatusRequestEntityTooLarge)
			return
		}
		utils.SendJSONError(w, "Expected multipart form with a file field", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.SendJSONError(w, "Expected multipart form with a file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.service.UploadImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}
