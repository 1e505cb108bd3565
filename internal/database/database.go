package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cutmevents/internal/config"
)

const (
	ItemsCollection         = "items"
	RegistrationsCollection = "registrations"
	ApplicationsCollection  = "applications"
)

type Service interface {
	Health() map[string]string
	Client() *mongo.Client
	Database() *mongo.Database
	EnsureIndexes(ctx context.Context) error
	Close() error
}

type service struct {
	db     *mongo.Client
	dbName string
}

// New connects to MongoDB and pings it once. A failure here is the only
// condition that stops the process at startup.
func New(cfg config.MongoConfig) Service {
	if cfg.URI == "" {
		log.Fatal().Msg("MONGO_URI environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to reach MongoDB")
	}

	log.Info().Str("database", cfg.Database).Msg("Connected to MongoDB")
	return &service{
		db:     client,
		dbName: cfg.Database,
	}
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := s.db.Ping(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		return map[string]string{
			"message": "db down",
			"error":   err.Error(),
		}
	}

	return map[string]string{
		"message": "It's healthy",
	}
}

func (s *service) Client() *mongo.Client {
	return s.db
}

func (s *service) Database() *mongo.Database {
	return s.db.Database(s.dbName)
}

// EnsureIndexes creates the indexes backing the list filters and sort orders.
func (s *service) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		ItemsCollection: {
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "date", Value: 1}}},
		},
		RegistrationsCollection: {
			{Keys: bson.D{{Key: "itemId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		ApplicationsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "type", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := s.Database().Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			log.Error().Err(err).Str("collection", collection).Msg("Failed to create indexes")
			return err
		}
	}
	return nil
}

func (s *service) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.db.Disconnect(ctx)
}
