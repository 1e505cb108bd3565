package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"cutmevents/internal/config"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// EmailService delivers one HTML message. Delivery is a single attempt.
type EmailService interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

// NewEmailService picks the delivery backend once, from configuration:
// SMTP when fully configured, otherwise the Brevo API when a key is present,
// otherwise a logger that only records the message.
func NewEmailService(cfg config.MailConfig) EmailService {
	if cfg.SMTPConfigured() {
		log.Info().Str("host", cfg.SMTPHost).Int("port", cfg.SMTPPort).Msg("Using SMTP email delivery")
		return &smtpEmailService{
			dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
			from:   cfg.From,
		}
	}
	if cfg.BrevoAPIKey != "" {
		log.Info().Msg("Using Brevo transactional email delivery")
		return &brevoEmailService{
			apiKey:      cfg.BrevoAPIKey,
			endpoint:    brevoEndpoint,
			senderEmail: cfg.BrevoSender,
			senderName:  cfg.BrevoSenderN,
			client:      &http.Client{Timeout: 15 * time.Second},
		}
	}
	log.Warn().Msg("No email transport configured; outgoing emails will only be logged")
	return &logEmailService{}
}

type smtpEmailService struct {
	dialer *gomail.Dialer
	from   string
}

func (e *smtpEmailService) SendEmail(_ context.Context, to, subject, html string) error {
	m := gomail.NewMessage()

	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

type brevoEmailService struct {
	apiKey      string
	endpoint    string
	senderEmail string
	senderName  string
	client      *http.Client
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoMessage struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

func (e *brevoEmailService) SendEmail(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(brevoMessage{
		Sender:      brevoContact{Email: e.senderEmail, Name: e.senderName},
		To:          []brevoContact{{Email: to}},
		Subject:     subject,
		HTMLContent: html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo send: status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}

type logEmailService struct{}

func (logEmailService) SendEmail(_ context.Context, to, subject, html string) error {
	log.Warn().Str("to", to).Str("subject", subject).Msg("Email not sent (no transport configured)")
	log.Debug().Str("to", to).Str("body", html).Msg("Unsent email body")
	return nil
}
