package handlers

import (
	"net/http"

	"github.com/rs/zerolog/hlog"

	"cutmevents/internal/models"
	"cutmevents/internal/services"
	"cutmevents/internal/utils"
)

type AuthHandler struct {
	authService services.AuthService
	production  bool
}

func NewAuthHandler(authService services.AuthService, production bool) *AuthHandler {
	return &AuthHandler{authService: authService, production: production}
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLogin
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	token, err := a.authService.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err, a.production)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

func (a *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	if err := a.authService.RequestOTP(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err, a.production)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "OTP sent"})
}

func (a *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPVerify
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	token, err := a.authService.VerifyOTP(r.Context(), req.Email, string(req.OTP))
	if err != nil {
		writeServiceError(w, r, err, a.production)
		return
	}

	hlog.FromRequest(r).Info().Str("email", req.Email).Msg("Issued user token")
	utils.RespondWithJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}
