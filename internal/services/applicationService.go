package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cutmevents/internal/metrics"
	"cutmevents/internal/models"
	"cutmevents/internal/repositories"
)

type ApplicationService interface {
	CreateApplication(ctx context.Context, application models.Application) (*models.Application, error)
	GetApplications(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, applicationID primitive.ObjectID, status models.ApplicationStatus) (*models.Application, error)
}

type applicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	now             func() time.Time
}

func NewApplicationService(applicationRepo repositories.ApplicationRepository) ApplicationService {
	return &applicationServiceImpl{applicationRepo: applicationRepo, now: time.Now}
}

func (s *applicationServiceImpl) CreateApplication(ctx context.Context, application models.Application) (*models.Application, error) {
	application.Name = strings.TrimSpace(application.Name)
	application.Email = strings.TrimSpace(application.Email)
	if application.Type == "" || application.Name == "" || application.Email == "" {
		return nil, newError(ErrValidation, "type, name, and email are required")
	}
	if !application.Type.Valid() {
		return nil, newError(ErrValidation, "Invalid application type")
	}

	// Status is always decided by an administrator later.
	application.ID = primitive.NilObjectID
	application.Status = models.StatusPending
	now := s.now().UTC()
	application.CreatedAt = now
	application.UpdatedAt = now

	created, err := s.applicationRepo.Create(ctx, &application)
	if err != nil {
		log.Error().Err(err).Str("email", application.Email).Msg("Failed to insert application")
		return nil, err
	}

	metrics.ApplicationsCreatedTotal.WithLabelValues(string(created.Type)).Inc()
	log.Info().Str("application_id", created.ID.Hex()).Str("type", string(created.Type)).Msg("Application submitted")
	return created, nil
}

func (s *applicationServiceImpl) GetApplications(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	applications, err := s.applicationRepo.Find(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Error finding applications")
		return nil, err
	}
	log.Debug().Int("count", len(applications)).Msg("Successfully retrieved applications")
	return applications, nil
}

func (s *applicationServiceImpl) UpdateApplicationStatus(ctx context.Context, applicationID primitive.ObjectID, status models.ApplicationStatus) (*models.Application, error) {
	if !status.Valid() {
		return nil, newError(ErrValidation, "Invalid status")
	}

	updated, err := s.applicationRepo.UpdateStatus(ctx, applicationID, status, s.now().UTC())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Warn().Str("application_id", applicationID.Hex()).Msg("Application not found for status update")
			return nil, newError(ErrNotFound, "Not found")
		}
		log.Error().Err(err).Str("application_id", applicationID.Hex()).Msg("Failed to update application status")
		return nil, err
	}

	log.Info().Str("application_id", applicationID.Hex()).Str("status", string(status)).Msg("Application status updated")
	return updated, nil
}
