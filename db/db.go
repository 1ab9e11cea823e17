package db

import (
	"context"

	"chefotw/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection         *mongo.Collection
	ServicesCollection     *mongo.Collection
	ReservationsCollection *mongo.Collection
	ReviewsCollection      *mongo.Collection
	MessagesCollection     *mongo.Collection
	Client                 *mongo.Client
)

// Connect dials MongoDB with the configured URI and binds the collection
// handles. Must be called once at startup before any handler runs.
func Connect(ctx context.Context, cfg *config.Config) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}
	Client = client

	database := client.Database("chefdb")
	UserCollection = database.Collection("users")
	ServicesCollection = database.Collection("services")
	ReservationsCollection = database.Collection("reservations")
	ReviewsCollection = database.Collection("reviews")
	MessagesCollection = database.Collection("messages")
	return nil
}

// EnsureIndexes creates the unique email index on users.
func EnsureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    map[string]any{"email": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}
