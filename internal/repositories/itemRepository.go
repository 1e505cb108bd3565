package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cutmevents/internal/database"
	"cutmevents/internal/models"
	"cutmevents/internal/utils"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	FindByID(ctx context.Context, itemID primitive.ObjectID) (*models.Item, error)
	Find(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
	Update(ctx context.Context, itemID primitive.ObjectID, updateFields bson.M) (*models.Item, error)
	Delete(ctx context.Context, itemID primitive.ObjectID) error
}

type itemRepository struct {
	collection *mongo.Collection
}

func NewItemRepository(db database.Service) ItemRepository {
	return &itemRepository{collection: db.Database().Collection(database.ItemsCollection)}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	q := utils.NewQueryTimer("item", "create")
	defer q.Done()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		q.Fail()
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}
	return item, nil
}

func (r *itemRepository) FindByID(ctx context.Context, itemID primitive.ObjectID) (*models.Item, error) {
	q := utils.NewQueryTimer("item", "findByID")
	defer q.Done()

	var item models.Item
	err := r.collection.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		q.Fail()
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

func (r *itemRepository) Find(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	q := utils.NewQueryTimer("item", "find")
	defer q.Done()

	query := bson.M{}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Published != nil {
		query["isPublished"] = *filter.Published
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		q.Fail()
		return nil, fmt.Errorf("error fetching items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		q.Fail()
		return nil, fmt.Errorf("error decoding items: %w", err)
	}
	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, itemID primitive.ObjectID, updateFields bson.M) (*models.Item, error) {
	q := utils.NewQueryTimer("item", "update")
	defer q.Done()

	var item models.Item
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": itemID}, bson.M{"$set": updateFields}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		q.Fail()
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return &item, nil
}

func (r *itemRepository) Delete(ctx context.Context, itemID primitive.ObjectID) error {
	q := utils.NewQueryTimer("item", "delete")
	defer q.Done()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": itemID})
	if err != nil {
		q.Fail()
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
