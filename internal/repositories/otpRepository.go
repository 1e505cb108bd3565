package repositories

import (
	"sync"
	"time"

	"cutmevents/internal/models"
)

// OTPRepository holds at most one pending code per email. State lives in
// process memory and is lost on restart.
type OTPRepository interface {
	Put(email, code string, ttl time.Duration)
	Get(email string) (models.OTPRecord, bool)
	Consume(email string)
	IncrementAttempts(email string) (models.OTPRecord, bool)
	PurgeExpired(cutoff time.Time) int
	Len() int
}

type otpRepository struct {
	mu      sync.Mutex
	records map[string]*models.OTPRecord
	now     func() time.Time
}

func NewOTPRepository() OTPRepository {
	return NewOTPRepositoryWithClock(time.Now)
}

func NewOTPRepositoryWithClock(now func() time.Time) OTPRepository {
	return &otpRepository{
		records: make(map[string]*models.OTPRecord),
		now:     now,
	}
}

// Put replaces whatever was pending for email and resets the attempt count.
func (r *otpRepository) Put(email, code string, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[email] = &models.OTPRecord{
		Code:      code,
		ExpiresAt: r.now().Add(ttl),
	}
}

func (r *otpRepository) Get(email string) (models.OTPRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[email]
	if !ok {
		return models.OTPRecord{}, false
	}
	return *rec, true
}

func (r *otpRepository) Consume(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, email)
}

// IncrementAttempts bumps the counter in place and returns the record as it
// is after the increment. ok is false when nothing is pending.
func (r *otpRepository) IncrementAttempts(email string) (models.OTPRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[email]
	if !ok {
		return models.OTPRecord{}, false
	}
	rec.Attempts++
	return *rec, true
}

// PurgeExpired drops records whose expiry is before cutoff.
func (r *otpRepository) PurgeExpired(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	purged := 0
	for email, rec := range r.records {
		if rec.ExpiresAt.Before(cutoff) {
			delete(r.records, email)
			purged++
		}
	}
	return purged
}

func (r *otpRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
