package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cutmevents/internal/metrics"
	"cutmevents/internal/models"
	"cutmevents/internal/repositories"
	"cutmevents/internal/utils"
)

// CSVHeader is the column order of the registrations export.
var CSVHeader = []string{"RegistrationID", "ItemID", "ItemTitle", "ItemType", "TeamName", "ParticipantName", "ParticipantEmail", "ParticipantPhone", "CreatedAt"}

const csvTimeLayout = "2006-01-02T15:04:05.000Z07:00"

type RegistrationService interface {
	CreateRegistration(ctx context.Context, input models.RegistrationInput, submittedBy string) (*models.Registration, error)
	GetRegistrations(ctx context.Context, itemID string) ([]models.RegistrationWithItem, error)
	ExportRegistrationsCSV(ctx context.Context, itemID string, w io.Writer) error
}

type registrationServiceImpl struct {
	registrationRepo repositories.RegistrationRepository
	itemRepo         repositories.ItemRepository
	now              func() time.Time
}

func NewRegistrationService(registrationRepo repositories.RegistrationRepository, itemRepo repositories.ItemRepository) RegistrationService {
	return &registrationServiceImpl{registrationRepo: registrationRepo, itemRepo: itemRepo, now: time.Now}
}

func (s *registrationServiceImpl) CreateRegistration(ctx context.Context, input models.RegistrationInput, submittedBy string) (*models.Registration, error) {
	log.Debug().Str("item_id", input.ItemID).Int("participants", len(input.Participants)).Msg("Attempting to create registration")
	if strings.TrimSpace(input.ItemID) == "" || input.Participants == nil {
		return nil, newError(ErrValidation, "itemId and participants required")
	}

	itemID, err := primitive.ObjectIDFromHex(strings.TrimSpace(input.ItemID))
	if err != nil {
		log.Warn().Str("item_id", input.ItemID).Msg("Malformed item ID in registration")
		return nil, newError(ErrNotFound, "Item not found")
	}
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Warn().Str("item_id", itemID.Hex()).Msg("Registration for unknown item")
			return nil, newError(ErrNotFound, "Item not found")
		}
		log.Error().Err(err).Str("item_id", itemID.Hex()).Msg("Error resolving item for registration")
		return nil, err
	}

	participants := make([]models.Participant, len(input.Participants))
	for i, p := range input.Participants {
		participants[i] = models.Participant{
			Name:  strings.TrimSpace(p.Name),
			Email: strings.TrimSpace(p.Email),
			Phone: strings.TrimSpace(p.Phone),
		}
	}

	now := s.now().UTC()
	registration := &models.Registration{
		ItemID:       item.ID,
		ItemType:     item.Type,
		TeamName:     strings.TrimSpace(input.TeamName),
		Participants: participants,
		Notes:        input.Notes,
		SubmittedBy:  submittedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := registration.Validate(); err != nil {
		log.Warn().Err(err).Str("item_id", itemID.Hex()).Msg("Invalid registration")
		return nil, newError(ErrValidation, err.Error())
	}

	created, err := s.registrationRepo.Create(ctx, registration)
	if err != nil {
		log.Error().Err(err).Str("item_id", itemID.Hex()).Msg("Failed to insert registration")
		return nil, err
	}

	metrics.RegistrationsCreatedTotal.WithLabelValues(string(created.ItemType)).Inc()
	log.Info().Str("registration_id", created.ID.Hex()).Str("item_id", itemID.Hex()).Msg("Registration created successfully")
	return created, nil
}

func (s *registrationServiceImpl) parseItemFilter(itemID string) (*primitive.ObjectID, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid itemId")
	}
	return &id, nil
}

func (s *registrationServiceImpl) GetRegistrations(ctx context.Context, itemID string) ([]models.RegistrationWithItem, error) {
	filter, err := s.parseItemFilter(itemID)
	if err != nil {
		return nil, err
	}
	registrations, err := s.registrationRepo.FindWithItems(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Error finding registrations")
		return nil, err
	}
	log.Debug().Int("count", len(registrations)).Msg("Successfully retrieved registrations")
	return registrations, nil
}

// ExportRegistrationsCSV writes one row per participant, so a registration
// with three participants yields three rows sharing its RegistrationID.
func (s *registrationServiceImpl) ExportRegistrationsCSV(ctx context.Context, itemID string, w io.Writer) error {
	registrations, err := s.GetRegistrations(ctx, itemID)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, utils.QuoteCSVRow(CSVHeader)); err != nil {
		return err
	}
	rows := 0
	for _, reg := range registrations {
		for _, row := range registrationRows(reg) {
			if _, err := io.WriteString(w, "\n"+utils.QuoteCSVRow(row)); err != nil {
				return err
			}
			rows++
		}
	}

	log.Info().Int("registrations", len(registrations)).Int("rows", rows).Msg("Registrations exported")
	return nil
}

func registrationRows(reg models.RegistrationWithItem) [][]string {
	var itemID, itemTitle string
	if reg.Item != nil {
		itemID = reg.Item.ID.Hex()
		itemTitle = reg.Item.Title
	}
	createdAt := reg.CreatedAt.UTC().Format(csvTimeLayout)

	rows := make([][]string, 0, len(reg.Participants))
	for _, p := range reg.Participants {
		rows = append(rows, []string{
			reg.ID.Hex(),
			itemID,
			itemTitle,
			string(reg.ItemType),
			reg.TeamName,
			p.Name,
			p.Email,
			p.Phone,
			createdAt,
		})
	}
	return rows
}
