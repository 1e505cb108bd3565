package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cutmevents/internal/database"
	"cutmevents/internal/models"
	"cutmevents/internal/utils"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) (*models.Application, error)
	Find(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error)
	UpdateStatus(ctx context.Context, applicationID primitive.ObjectID, status models.ApplicationStatus, at time.Time) (*models.Application, error)
}

type applicationRepository struct {
	collection *mongo.Collection
}

func NewApplicationRepository(db database.Service) ApplicationRepository {
	return &applicationRepository{collection: db.Database().Collection(database.ApplicationsCollection)}
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) (*models.Application, error) {
	q := utils.NewQueryTimer("application", "create")
	defer q.Done()

	if application.ID.IsZero() {
		application.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, application); err != nil {
		q.Fail()
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}
	return application, nil
}

func (r *applicationRepository) Find(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	q := utils.NewQueryTimer("application", "find")
	defer q.Done()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("error fetching applications: %w", err)
	}
	defer cursor.Close(ctx)

	applications := []models.Application{}
	if err := cursor.All(ctx, &applications); err != nil {
		q.Fail()
		return nil, fmt.Errorf("error decoding applications: %w", err)
	}
	return applications, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, applicationID primitive.ObjectID, status models.ApplicationStatus, at time.Time) (*models.Application, error) {
	q := utils.NewQueryTimer("application", "updateStatus")
	defer q.Done()

	var application models.Application
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": applicationID}, update, opts).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		q.Fail()
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return &application, nil
}
