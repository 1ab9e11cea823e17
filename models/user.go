package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string              `json:"email" bson:"email"`
	Password  string              `json:"-" bson:"password"`
	Name      string              `json:"name" bson:"name"`
	Address   string              `json:"address,omitempty" bson:"address,omitempty"`
	Picture   string              `json:"picture,omitempty" bson:"picture,omitempty"`
	Service   *primitive.ObjectID `json:"service,omitempty" bson:"service,omitempty"`
	CreatedAt time.Time           `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time           `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// PublicUser is the shape returned whenever a user document is populated
// into another resource. The password never leaves the users collection.
type PublicUser struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Email   string             `json:"email" bson:"email"`
	Name    string             `json:"name,omitempty" bson:"name,omitempty"`
	Address string             `json:"address,omitempty" bson:"address,omitempty"`
	Picture string             `json:"picture,omitempty" bson:"picture,omitempty"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Address: u.Address,
		Picture: u.Picture,
	}
}
