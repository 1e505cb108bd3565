package models

import "time"

// OTPRecord is the pending one-time password for a single email address.
type OTPRecord struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
}

func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
