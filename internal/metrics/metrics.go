package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Authentication Metrics
	OTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_otp_requests_total",
		Help: "Total number of OTP requests.",
	}, []string{"status"}) // status: "sent", "invalid_email" or "delivery_failed"
	OTPVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_otp_verifications_total",
		Help: "Total number of OTP verification attempts by outcome.",
	}, []string{"outcome"}) // outcome: "success", "invalid", "expired", "locked", "not_found"
	OTPPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "app_otp_pending",
		Help: "Number of OTP codes currently held in memory.",
	})
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of admin login attempts (successful and failed).",
	}, []string{"status"}) // status: "success" or "failed"

	// Content Metrics
	ItemsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_items_created_total",
		Help: "Total number of events, hackathons and workshops created.",
	})
	RegistrationsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_registrations_created_total",
		Help: "Total number of registrations submitted.",
	}, []string{"item_type"})
	ApplicationsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_applications_created_total",
		Help: "Total number of membership and lead applications submitted.",
	}, []string{"type"})
	ImagesUploadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_images_uploaded_total",
		Help: "Total number of item images uploaded.",
	})
)
