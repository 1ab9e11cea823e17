package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Reservation struct {
	ID             primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	User           *primitive.ObjectID `json:"user,omitempty" bson:"user,omitempty"`
	Service        primitive.ObjectID  `json:"service" bson:"service"`
	FullName       string              `json:"fullName,omitempty" bson:"fullName,omitempty"`
	TotalPerson    int                 `json:"totalPerson" bson:"totalPerson"`
	PricePerPerson float64             `json:"pricePerPerson" bson:"pricePerPerson"`
	Date           time.Time           `json:"date" bson:"date"`
	Hour           string              `json:"hour" bson:"hour"`
	TotalPrice     float64             `json:"totalPrice" bson:"totalPrice"`
	CreatedAt      time.Time           `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt      time.Time           `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ReservationPopulated resolves the service (with its owner) and the
// reserving user before the reservation is returned to a caller.
type ReservationPopulated struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	User           *PublicUser        `json:"user,omitempty"`
	Service        *ServicePopulated  `json:"service,omitempty"`
	FullName       string             `json:"fullName,omitempty"`
	TotalPerson    int                `json:"totalPerson"`
	PricePerPerson float64            `json:"pricePerPerson"`
	Date           time.Time          `json:"date"`
	Hour           string             `json:"hour"`
	TotalPrice     float64            `json:"totalPrice"`
	CreatedAt      time.Time          `json:"createdAt,omitempty"`
	UpdatedAt      time.Time          `json:"updatedAt,omitempty"`
}

func (r Reservation) Populated(service *ServicePopulated, user *PublicUser) ReservationPopulated {
	return ReservationPopulated{
		ID:             r.ID,
		User:           user,
		Service:        service,
		FullName:       r.FullName,
		TotalPerson:    r.TotalPerson,
		PricePerPerson: r.PricePerPerson,
		Date:           r.Date,
		Hour:           r.Hour,
		TotalPrice:     r.TotalPrice,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
