package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cutmevents/internal/database"
	"cutmevents/internal/models"
	"cutmevents/internal/utils"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) (*models.Registration, error)
	// FindWithItems returns registrations newest first, each joined with
	// its item. A nil itemID matches every registration.
	FindWithItems(ctx context.Context, itemID *primitive.ObjectID) ([]models.RegistrationWithItem, error)
}

type registrationRepository struct {
	collection *mongo.Collection
}

func NewRegistrationRepository(db database.Service) RegistrationRepository {
	return &registrationRepository{collection: db.Database().Collection(database.RegistrationsCollection)}
}

func (r *registrationRepository) Create(ctx context.Context, registration *models.Registration) (*models.Registration, error) {
	q := utils.NewQueryTimer("registration", "create")
	defer q.Done()

	if err := registration.Validate(); err != nil {
		return nil, err
	}
	if registration.ID.IsZero() {
		registration.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, registration); err != nil {
		q.Fail()
		return nil, fmt.Errorf("failed to insert registration: %w", err)
	}
	return registration, nil
}

func (r *registrationRepository) FindWithItems(ctx context.Context, itemID *primitive.ObjectID) ([]models.RegistrationWithItem, error) {
	q := utils.NewQueryTimer("registration", "findWithItems")
	defer q.Done()

	match := bson.M{}
	if itemID != nil {
		match["itemId"] = *itemID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         database.ItemsCollection,
			"localField":   "itemId",
			"foreignField": "_id",
			"as":           "item",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$item", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("error fetching registrations: %w", err)
	}
	defer cursor.Close(ctx)

	registrations := []models.RegistrationWithItem{}
	if err := cursor.All(ctx, &registrations); err != nil {
		q.Fail()
		return nil, fmt.Errorf("error decoding registrations: %w", err)
	}
	return registrations, nil
}
