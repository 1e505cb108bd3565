package config

import (
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultPort     = 5000
	defaultDatabase = "cutm_events"
	defaultSMTPPort = 587
	defaultSender   = "no-reply@yourdomain.com"
	defaultSenderNm = "CUTM Events"
)

type Config struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string

	Mongo MongoConfig
	Auth  AuthConfig
	Mail  MailConfig
	Minio MinioConfig
}

type MongoConfig struct {
	URI      string
	Database string
}

// AuthConfig holds the token secret and the single admin identity.
// PasswordHash wins over Password when both are set.
type AuthConfig struct {
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	PasswordHash  string
}

type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	From         string
	BrevoAPIKey  string
	BrevoSender  string
	BrevoSenderN string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

func Load() Config {
	env := getEnv("APP_ENV", getEnv("NODE_ENV", "development"))

	brevoSender := getEnv("BREVO_SENDER_EMAIL", "")
	from := getEnv("MAIL_FROM", brevoSender)
	if from == "" {
		from = defaultSender
	}
	if brevoSender == "" {
		brevoSender = defaultSender
	}

	return Config{
		Port:           getEnvInt("PORT", defaultPort),
		Env:            env,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DB", defaultDatabase),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			AdminUsername: getEnv("ADMIN_USERNAME", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			PasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Mail: MailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnvInt("SMTP_PORT", defaultSMTPPort),
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPass:     getEnv("SMTP_PASS", ""),
			From:         from,
			BrevoAPIKey:  getEnv("BREVO_API_KEY", ""),
			BrevoSender:  brevoSender,
			BrevoSenderN: getEnv("BREVO_SENDER_NAME", defaultSenderNm),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// SMTPConfigured reports whether direct SMTP delivery has everything it needs.
func (m MailConfig) SMTPConfigured() bool {
	return m.SMTPHost != "" && m.SMTPUser != "" && m.SMTPPass != ""
}

func (m MinioConfig) Configured() bool {
	return m.Endpoint != "" && m.AccessKey != "" && m.SecretKey != "" && m.Bucket != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(strings.TrimSpace(valueStr)); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(strings.TrimSpace(valueStr)); err == nil {
			return value
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
