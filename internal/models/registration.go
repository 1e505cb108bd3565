package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinParticipants = 1
	MaxParticipants = 5
)

var ErrParticipantCount = fmt.Errorf("participants must be between %d and %d", MinParticipants, MaxParticipants)

type Participant struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

type Registration struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ItemID       primitive.ObjectID `json:"itemId" bson:"itemId"`
	ItemType     ItemType           `json:"itemType" bson:"itemType"`
	TeamName     string             `json:"teamName,omitempty" bson:"teamName,omitempty"`
	Participants []Participant      `json:"participants" bson:"participants"`
	Notes        string             `json:"notes,omitempty" bson:"notes,omitempty"`
	SubmittedBy  string             `json:"submittedBy,omitempty" bson:"submittedBy,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Validate enforces the document invariants every stored registration must hold.
func (r *Registration) Validate() error {
	if n := len(r.Participants); n < MinParticipants || n > MaxParticipants {
		return ErrParticipantCount
	}
	for i, p := range r.Participants {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Email) == "" {
			return fmt.Errorf("participant %d requires name and email", i+1)
		}
	}
	if !r.ItemType.Valid() {
		return errors.New("invalid item type")
	}
	return nil
}

// RegistrationWithItem is a registration joined with the item it references.
// Item is nil when the item has since been deleted.
type RegistrationWithItem struct {
	Registration `bson:",inline"`
	Item         *Item `json:"item,omitempty" bson:"item,omitempty"`
}

type RegistrationInput struct {
	ItemID       string        `json:"itemId"`
	TeamName     string        `json:"teamName,omitempty"`
	Participants []Participant `json:"participants"`
	Notes        string        `json:"notes,omitempty"`
}
