package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "NODE_ENV", "MONGO_DB", "SMTP_PORT", "MAIL_FROM", "BREVO_SENDER_EMAIL", "BREVO_SENDER_NAME", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "cutm_events", cfg.Mongo.Database)
	assert.Equal(t, 587, cfg.Mail.SMTPPort)
	assert.Equal(t, "no-reply@yourdomain.com", cfg.Mail.From)
	assert.Equal(t, "CUTM Events", cfg.Mail.BrevoSenderN)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("APP_ENV", "")
	t.Setenv("BREVO_SENDER_EMAIL", "events@cutm.ac.in")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://events.cutm.ac.in ,")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, 8081, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "events@cutm.ac.in", cfg.Mail.From)
	assert.Equal(t, "events@cutm.ac.in", cfg.Mail.BrevoSender)
	assert.Equal(t, []string{"http://localhost:5173", "https://events.cutm.ac.in"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Minio.UseSSL)
}

func TestSMTPConfigured(t *testing.T) {
	m := MailConfig{SMTPHost: "smtp.example.com", SMTPUser: "u"}
	assert.False(t, m.SMTPConfigured())
	m.SMTPPass = "p"
	assert.True(t, m.SMTPConfigured())
}
