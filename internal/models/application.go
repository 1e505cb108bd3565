package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationType string

const (
	ApplicationTypeMember ApplicationType = "member"
	ApplicationTypeLead   ApplicationType = "lead"
)

func (t ApplicationType) Valid() bool {
	return t == ApplicationTypeMember || t == ApplicationTypeLead
}

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Application is a membership or lead candidacy. Lead applications use the
// leadership fields, member applications the rest; both share contact fields.
type Application struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Type     ApplicationType    `json:"type" bson:"type"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Github   string             `json:"github,omitempty" bson:"github,omitempty"`
	Linkedin string             `json:"linkedin,omitempty" bson:"linkedin,omitempty"`

	Role         string `json:"role,omitempty" bson:"role,omitempty"`
	Experience   string `json:"experience,omitempty" bson:"experience,omitempty"`
	Skills       string `json:"skills,omitempty" bson:"skills,omitempty"`
	Interests    string `json:"interests,omitempty" bson:"interests,omitempty"`
	Availability string `json:"availability,omitempty" bson:"availability,omitempty"`

	LeadershipExperience string `json:"leadershipExperience,omitempty" bson:"leadershipExperience,omitempty"`
	TechnicalSkills      string `json:"technicalSkills,omitempty" bson:"technicalSkills,omitempty"`
	MentoringExperience  string `json:"mentoringExperience,omitempty" bson:"mentoringExperience,omitempty"`
	ProjectIdeas         string `json:"projectIdeas,omitempty" bson:"projectIdeas,omitempty"`
	TimeCommitment       string `json:"timeCommitment,omitempty" bson:"timeCommitment,omitempty"`
	Motivation           string `json:"motivation,omitempty" bson:"motivation,omitempty"`

	Status    ApplicationStatus `json:"status" bson:"status"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
}

type ApplicationFilter struct {
	Status ApplicationStatus
	Type   ApplicationType
}

type ApplicationStatusUpdate struct {
	Status ApplicationStatus `json:"status"`
}
