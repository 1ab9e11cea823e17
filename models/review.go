package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Service     primitive.ObjectID `json:"service" bson:"service"`
	Rating      int                `json:"rating" bson:"rating"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	Picture     string             `json:"picture,omitempty" bson:"picture,omitempty"`
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type ReviewPopulated struct {
	ID          primitive.ObjectID `json:"_id"`
	Description string             `json:"description,omitempty"`
	Service     primitive.ObjectID `json:"service"`
	Rating      int                `json:"rating"`
	Owner       *PublicUser        `json:"owner,omitempty"`
	Name        string             `json:"name,omitempty"`
	Picture     string             `json:"picture,omitempty"`
	CreatedAt   time.Time          `json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty"`
}

func (rv Review) Populated(owner *PublicUser) ReviewPopulated {
	return ReviewPopulated{
		ID:          rv.ID,
		Description: rv.Description,
		Service:     rv.Service,
		Rating:      rv.Rating,
		Owner:       owner,
		Name:        rv.Name,
		Picture:     rv.Picture,
		CreatedAt:   rv.CreatedAt,
		UpdatedAt:   rv.UpdatedAt,
	}
}
