package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	ID             primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Picture        string               `json:"picture,omitempty" bson:"picture,omitempty"`
	Speciality     string               `json:"speciality" bson:"speciality"`
	Place          string               `json:"place" bson:"place"`
	Description    string               `json:"description" bson:"description"`
	PricePerPerson float64              `json:"pricePerPerson" bson:"pricePerPerson"`
	Owner          primitive.ObjectID   `json:"owner" bson:"owner"`
	Availability   string               `json:"availability" bson:"availability"`
	Reviews        []primitive.ObjectID `json:"reviews" bson:"reviews"`
	CreatedAt      time.Time            `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt      time.Time            `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ServicePopulated carries a service with its owner (and optionally its
// reviews) resolved, the shape every read endpoint responds with.
type ServicePopulated struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	Picture        string             `json:"picture,omitempty" bson:"picture,omitempty"`
	Speciality     string             `json:"speciality" bson:"speciality"`
	Place          string             `json:"place" bson:"place"`
	Description    string             `json:"description" bson:"description"`
	PricePerPerson float64            `json:"pricePerPerson" bson:"pricePerPerson"`
	Owner          *PublicUser        `json:"owner,omitempty"`
	Availability   string             `json:"availability" bson:"availability"`
	Reviews        []Review           `json:"reviews,omitempty"`
	CreatedAt      time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt      time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

func (s Service) Populated(owner *PublicUser, reviews []Review) ServicePopulated {
	return ServicePopulated{
		ID:             s.ID,
		Picture:        s.Picture,
		Speciality:     s.Speciality,
		Place:          s.Place,
		Description:    s.Description,
		PricePerPerson: s.PricePerPerson,
		Owner:          owner,
		Availability:   s.Availability,
		Reviews:        reviews,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
