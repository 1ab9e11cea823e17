// Package populate resolves document references before a response is
// returned, so every read is self-contained. Orphaned references (a deleted
// user or service still pointed at) resolve to nil rather than failing the
// request.
package populate

import (
	"context"
	"errors"

	"chefotw/db"
	"chefotw/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// User resolves a user reference, excluding the password.
func User(ctx context.Context, id primitive.ObjectID) (*models.PublicUser, error) {
	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// ServiceWithOwner resolves a service reference together with its owner.
func ServiceWithOwner(ctx context.Context, id primitive.ObjectID) (*models.ServicePopulated, error) {
	var service models.Service
	err := db.ServicesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&service)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	owner, err := User(ctx, service.Owner)
	if err != nil {
		return nil, err
	}

	populated := service.Populated(owner, nil)
	return &populated, nil
}

// ServiceReviews resolves the ordered review list of a service. Insertion
// order is display order, so reviews come back in the id-list order.
func ServiceReviews(ctx context.Context, ids []primitive.ObjectID) ([]models.Review, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := db.ReviewsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byID := make(map[primitive.ObjectID]models.Review, len(ids))
	for cursor.Next(ctx) {
		var rv models.Review
		if err := cursor.Decode(&rv); err != nil {
			continue
		}
		byID[rv.ID] = rv
	}

	reviews := make([]models.Review, 0, len(ids))
	for _, id := range ids {
		if rv, ok := byID[id]; ok {
			reviews = append(reviews, rv)
		}
	}
	return reviews, nil
}

// Reservation resolves a reservation's service (with owner) and user.
func Reservation(ctx context.Context, res models.Reservation) (models.ReservationPopulated, error) {
	service, err := ServiceWithOwner(ctx, res.Service)
	if err != nil {
		return models.ReservationPopulated{}, err
	}

	var user *models.PublicUser
	if res.User != nil {
		user, err = User(ctx, *res.User)
		if err != nil {
			return models.ReservationPopulated{}, err
		}
	}

	return res.Populated(service, user), nil
}
