package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cutmevents/internal/metrics"
	"cutmevents/internal/models"
	"cutmevents/internal/repositories"
)

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// ItemService defines the business logic for events, hackathons and workshops.
type ItemService interface {
	CreateItem(ctx context.Context, input models.ItemInput) (*models.Item, error)
	GetItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
	GetItemByID(ctx context.Context, itemID primitive.ObjectID) (*models.Item, error)
	UpdateItem(ctx context.Context, itemID primitive.ObjectID, input models.ItemInput) (*models.Item, error)
	DeleteItem(ctx context.Context, itemID primitive.ObjectID) error
}

// ImageRemover drops stored images an item no longer references.
type ImageRemover interface {
	RemoveImage(ctx context.Context, imageURL string)
}

type itemServiceImpl struct {
	itemRepo repositories.ItemRepository
	images   ImageRemover
	now      func() time.Time
}

// NewItemService accepts a nil images, in which case replaced or deleted
// images stay in the bucket.
func NewItemService(itemRepo repositories.ItemRepository, images ImageRemover) ItemService {
	return &itemServiceImpl{itemRepo: itemRepo, images: images, now: time.Now}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, newError(ErrValidation, "Invalid date")
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func (s *itemServiceImpl) removeImage(ctx context.Context, imageURL string) {
	if s.images != nil && imageURL != "" {
		s.images.RemoveImage(ctx, imageURL)
	}
}

func (s *itemServiceImpl) CreateItem(ctx context.Context, input models.ItemInput) (*models.Item, error) {
	log.Debug().Interface("input", input).Msg("Attempting to create item")
	if input.Type == nil || *input.Type == "" || !present(input.Title) || !present(input.Description) || !present(input.Date) || !present(input.Location) {
		log.Warn().Msg("Missing required fields for item")
		return nil, newError(ErrValidation, "Missing required fields")
	}
	if !input.Type.Valid() {
		return nil, newError(ErrValidation, "Invalid item type")
	}
	date, err := parseDate(*input.Date)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	item := &models.Item{
		Type:        *input.Type,
		Title:       strings.TrimSpace(*input.Title),
		Description: *input.Description,
		Date:        date,
		Location:    strings.TrimSpace(*input.Location),
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.IsPublished != nil {
		item.IsPublished = *input.IsPublished
	}

	created, err := s.itemRepo.Create(ctx, item)
	if err != nil {
		log.Error().Err(err).Str("title", item.Title).Msg("Failed to insert item")
		return nil, err
	}

	metrics.ItemsCreatedTotal.Inc()
	log.Info().Str("item_id", created.ID.Hex()).Str("type", string(created.Type)).Msg("Item created successfully")
	return created, nil
}

func (s *itemServiceImpl) GetItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	log.Debug().Str("type", string(filter.Type)).Msg("Attempting to retrieve items")
	items, err := s.itemRepo.Find(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Error finding items")
		return nil, err
	}
	log.Debug().Int("count", len(items)).Msg("Successfully retrieved items")
	return items, nil
}

func (s *itemServiceImpl) GetItemByID(ctx context.Context, itemID primitive.ObjectID) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Warn().Str("item_id", itemID.Hex()).Msg("Item not found")
			return nil, newError(ErrNotFound, "Not found")
		}
		log.Error().Err(err).Str("item_id", itemID.Hex()).Msg("Error finding item by ID")
		return nil, err
	}
	return item, nil
}

func (s *itemServiceImpl) buildItemUpdateFields(input models.ItemInput) (bson.M, error) {
	updateFields := bson.M{}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, newError(ErrValidation, "Invalid item type")
		}
		updateFields["type"] = *input.Type
	}
	if input.Title != nil {
		if !present(input.Title) {
			return nil, newError(ErrValidation, "Title cannot be empty")
		}
		updateFields["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		if !present(input.Description) {
			return nil, newError(ErrValidation, "Description cannot be empty")
		}
		updateFields["description"] = *input.Description
	}
	if input.Date != nil {
		date, err := parseDate(*input.Date)
		if err != nil {
			return nil, err
		}
		updateFields["date"] = date
	}
	if input.Location != nil {
		if !present(input.Location) {
			return nil, newError(ErrValidation, "Location cannot be empty")
		}
		updateFields["location"] = strings.TrimSpace(*input.Location)
	}
	if input.ImageURL != nil {
		updateFields["imageUrl"] = strings.TrimSpace(*input.ImageURL)
	}
	if input.IsPublished != nil {
		updateFields["isPublished"] = *input.IsPublished
	}
	return updateFields, nil
}

func (s *itemServiceImpl) UpdateItem(ctx context.Context, itemID primitive.ObjectID, input models.ItemInput) (*models.Item, error) {
	log.Debug().Str("item_id", itemID.Hex()).Interface("input", input).Msg("Attempting to update item")
	updateFields, err := s.buildItemUpdateFields(input)
	if err != nil {
		log.Warn().Err(err).Str("item_id", itemID.Hex()).Msg("Invalid item update")
		return nil, err
	}
	updateFields["updatedAt"] = s.now().UTC()

	var oldImage string
	if input.ImageURL != nil {
		current, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, s.itemLookupError(err, itemID, "update")
		}
		oldImage = current.ImageURL
	}

	updated, err := s.itemRepo.Update(ctx, itemID, updateFields)
	if err != nil {
		return nil, s.itemLookupError(err, itemID, "update")
	}
	if oldImage != updated.ImageURL {
		s.removeImage(ctx, oldImage)
	}

	log.Info().Str("item_id", itemID.Hex()).Msg("Item updated successfully")
	return updated, nil
}

func (s *itemServiceImpl) DeleteItem(ctx context.Context, itemID primitive.ObjectID) error {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return s.itemLookupError(err, itemID, "delete")
	}
	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return s.itemLookupError(err, itemID, "delete")
	}
	s.removeImage(ctx, item.ImageURL)
	log.Info().Str("item_id", itemID.Hex()).Msg("Item deleted successfully")
	return nil
}

func (s *itemServiceImpl) itemLookupError(err error, itemID primitive.ObjectID, op string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		log.Warn().Str("item_id", itemID.Hex()).Msg("Item not found for " + op)
		return newError(ErrNotFound, "Not found")
	}
	log.Error().Err(err).Str("item_id", itemID.Hex()).Msg("Failed to " + op + " item")
	return err
}
