package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"cutmevents/internal/config"
	"cutmevents/internal/metrics"
	"cutmevents/internal/repositories"
	"cutmevents/internal/utils"
)

const (
	OTPLength      = 6
	OTPTTL         = 5 * time.Minute
	OTPMaxAttempts = 5
	TokenTTL       = 2 * time.Hour

	otpSubject = "Your OTP for Events Login"
)

var institutionEmail = regexp.MustCompile(`^\d{12}@(?:centurionuniv\.edu\.in|cutm\.ac\.in)$`)

// IsInstitutionEmail reports whether email is a 12-digit student address on
// one of the two institutional domains.
func IsInstitutionEmail(email string) bool {
	return institutionEmail.MatchString(email)
}

type AuthService interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	AdminLogin(ctx context.Context, username, password string) (string, error)
}

type AuthOption func(*authService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) AuthOption {
	return func(s *authService) { s.now = now }
}

type authService struct {
	otpRepo      repositories.OTPRepository
	emailService EmailService
	cfg          config.AuthConfig
	now          func() time.Time
}

func NewAuthService(otpRepo repositories.OTPRepository, emailService EmailService, cfg config.AuthConfig, opts ...AuthOption) AuthService {
	s := &authService{
		otpRepo:      otpRepo,
		emailService: emailService,
		cfg:          cfg,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authService) RequestOTP(ctx context.Context, email string) error {
	log.Debug().Str("email", email).Msg("Attempting to issue OTP")
	if email == "" {
		metrics.OTPRequestsTotal.WithLabelValues("invalid_email").Inc()
		return newError(ErrValidation, "Valid email is required")
	}
	if !IsInstitutionEmail(email) {
		log.Warn().Str("email", email).Msg("OTP requested for non-institution email")
		metrics.OTPRequestsTotal.WithLabelValues("invalid_email").Inc()
		return newError(ErrValidation, "Email must be 12 digits @centurionuniv.edu.in or @cutm.ac.in")
	}

	code, err := utils.GenerateSecureOTP(OTPLength)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate OTP")
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	// Overwrites any pending code and its attempt count.
	s.otpRepo.Put(email, code, OTPTTL)
	metrics.OTPPending.Set(float64(s.otpRepo.Len()))

	html := fmt.Sprintf("<p>Your One-Time Password (OTP) is <strong>%s</strong>. It will expire in %d minutes.</p>", code, int(OTPTTL/time.Minute))
	if err := s.emailService.SendEmail(ctx, email, otpSubject, html); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to send OTP email")
		metrics.OTPRequestsTotal.WithLabelValues("delivery_failed").Inc()
		return wrapError(ErrEmailDelivery, "Failed to send OTP", err)
	}

	metrics.OTPRequestsTotal.WithLabelValues("sent").Inc()
	log.Info().Str("email", email).Msg("OTP sent")
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	code = strings.TrimSpace(code)
	log.Debug().Str("email", email).Msg("Attempting to verify OTP")
	if email == "" || code == "" {
		return "", newError(ErrValidation, "Email and OTP required")
	}
	if !IsInstitutionEmail(email) {
		return "", newError(ErrValidation, "Email must be 12 digits @centurionuniv.edu.in or @cutm.ac.in")
	}

	record, ok := s.otpRepo.Get(email)
	if !ok {
		metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
		return "", newError(ErrOTPNotFound, "No OTP requested for this email")
	}
	if record.Expired(s.now()) {
		s.consume(email)
		log.Warn().Str("email", email).Msg("Expired OTP presented")
		metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
		return "", newError(ErrOTPExpired, "OTP expired. Please request a new one.")
	}
	if record.Attempts >= OTPMaxAttempts {
		s.consume(email)
		log.Warn().Str("email", email).Msg("OTP locked after too many attempts")
		metrics.OTPVerificationsTotal.WithLabelValues("locked").Inc()
		return "", newError(ErrOTPLocked, "Too many attempts. Please request a new OTP.")
	}

	// The attempt counts before the comparison, so wrong guesses use up the budget.
	record, ok = s.otpRepo.IncrementAttempts(email)
	if !ok {
		// Consumed by a concurrent verify between Get and here.
		metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
		return "", newError(ErrOTPNotFound, "No OTP requested for this email")
	}
	if code != record.Code {
		if record.Attempts >= OTPMaxAttempts {
			s.consume(email)
			log.Warn().Str("email", email).Msg("OTP locked after too many attempts")
			metrics.OTPVerificationsTotal.WithLabelValues("locked").Inc()
			return "", newError(ErrOTPLocked, "Too many attempts. Please request a new OTP.")
		}
		log.Warn().Str("email", email).Int("attempts", record.Attempts).Msg("Invalid OTP presented")
		metrics.OTPVerificationsTotal.WithLabelValues("invalid").Inc()
		return "", newError(ErrInvalidCode, "Invalid OTP")
	}

	s.consume(email)
	token, err := utils.GenerateJWT(s.cfg.JWTSecret, utils.RoleUser, email, TokenTTL, s.now())
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Could not generate token for OTP user")
		return "", wrapError(ErrConfiguration, "Failed to verify OTP", err)
	}

	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	log.Info().Str("email", email).Msg("OTP verified")
	return token, nil
}

func (s *authService) consume(email string) {
	s.otpRepo.Consume(email)
	metrics.OTPPending.Set(float64(s.otpRepo.Len()))
}

func (s *authService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	log.Debug().Str("username", username).Msg("Attempting admin login")
	if username == "" || password == "" {
		return "", newError(ErrValidation, "Username and password required")
	}
	if s.cfg.AdminUsername == "" || (s.cfg.AdminPassword == "" && s.cfg.PasswordHash == "") {
		log.Error().Msg("Admin credentials are not configured")
		return "", newError(ErrConfiguration, "Admin credentials not set")
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1

	var passwordMatch bool
	if s.cfg.PasswordHash != "" {
		passwordMatch = bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	} else {
		passwordMatch = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	}

	if !usernameMatch || !passwordMatch {
		log.Warn().Str("username", username).Msg("Invalid admin credentials")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return "", newError(ErrInvalidCredentials, "Invalid credentials")
	}

	token, err := utils.GenerateJWT(s.cfg.JWTSecret, utils.RoleAdmin, username, TokenTTL, s.now())
	if err != nil {
		log.Error().Err(err).Msg("Could not generate admin token")
		return "", wrapError(ErrConfiguration, "Could not generate token", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	log.Info().Str("username", username).Msg("Admin logged in")
	return token, nil
}
