package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ItemType string

const (
	ItemTypeEvent     ItemType = "event"
	ItemTypeHackathon ItemType = "hackathon"
	ItemTypeWorkshop  ItemType = "workshop"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeEvent, ItemTypeHackathon, ItemTypeWorkshop:
		return true
	}
	return false
}

// Item is a publishable event, hackathon or workshop.
type Item struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Type        ItemType           `json:"type" bson:"type"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Date        time.Time          `json:"date" bson:"date"`
	Location    string             `json:"location" bson:"location"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	IsPublished bool               `json:"isPublished" bson:"isPublished"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ItemInput is the create/update payload. Nil fields were not sent.
type ItemInput struct {
	Type        *ItemType `json:"type,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Location    *string   `json:"location,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	IsPublished *bool     `json:"isPublished,omitempty"`
}

type ItemFilter struct {
	Type      ItemType
	Published *bool
}
