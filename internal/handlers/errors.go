package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"cutmevents/internal/services"
	"cutmevents/internal/utils"
)

type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrOTPExpired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrOTPNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCode), errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrOTPLocked):
		return http.StatusTooManyRequests
	case errors.Is(err, services.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError turns a service error into the {"message"} body. With
// hideDetail set, causes and unclassified error text are withheld; only the
// OTP routes ask for that in production.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, hideDetail bool) {
	status := statusFor(err)
	body := errorBody{Message: "Internal Server Error"}

	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		body.Message = svcErr.Message
		if svcErr.Cause != nil && !hideDetail {
			body.Detail = svcErr.Cause.Error()
		}
	} else if !hideDetail {
		body.Message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Int("status", status).Msg("Request failed")
	} else {
		hlog.FromRequest(r).Debug().Err(err).Int("status", status).Msg("Request rejected")
	}
	utils.RespondWithJSON(w, status, body)
}

func writeInvalidJSON(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Warn().Err(err).Msg("Invalid JSON payload")
	utils.SendJSONError(w, "Invalid JSON payload", http.StatusBadRequest)
}
