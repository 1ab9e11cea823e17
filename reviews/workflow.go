package reviews

import (
	"context"
	"errors"
	"time"

	"chefotw/db"
	"chefotw/middleware"
	"chefotw/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Workflow states, in order. The review insert and the service link are two
// separate writes; a link failure leaves the review persisted but unlisted,
// observable as StateStored.
type State string

const (
	StateRequested State = "requested"
	StateStored    State = "stored"
	StateComplete  State = "complete"
)

var ErrServiceNotFound = errors.New("service not found")

// LinkError marks a failed service link after the review was already
// persisted.
type LinkError struct {
	Err error
}

func (e *LinkError) Error() string { return "review link failed: " + e.Err.Error() }
func (e *LinkError) Unwrap() error { return e.Err }

// ReviewInserter persists a new review, assigning its id.
type ReviewInserter interface {
	InsertReview(ctx context.Context, rv *models.Review) error
}

// ServiceLinker pushes a review id onto the parent service's review list and
// returns the updated service. A nil result with a nil error means the
// service does not exist.
type ServiceLinker interface {
	LinkReview(ctx context.Context, serviceID, reviewID primitive.ObjectID) (*models.Service, error)
}

// Workflow drives one review from request to completion: insert the review,
// then link it onto its service exactly once.
type Workflow struct {
	Reviews  ReviewInserter
	Services ServiceLinker

	State State
}

// NewWorkflow builds a workflow backed by the Mongo collections.
func NewWorkflow() *Workflow {
	return &Workflow{
		Reviews:  mongoStore{},
		Services: mongoStore{},
		State:    StateRequested,
	}
}

type Result struct {
	Review  models.Review
	Service models.Service
}

// Run inserts the review authored by the principal and links it to the
// service.
func (wf *Workflow) Run(ctx context.Context, principal *middleware.Claims, serviceID, ownerID primitive.ObjectID, description string, rating int) (*Result, error) {
	wf.State = StateRequested

	now := time.Now()
	review := models.Review{
		Description: description,
		Service:     serviceID,
		Rating:      rating,
		Owner:       ownerID,
		// Snapshot the author's display fields at authoring time
		Name:      principal.Name,
		Picture:   principal.Picture,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := wf.Reviews.InsertReview(ctx, &review); err != nil {
		return nil, err
	}
	wf.State = StateStored

	service, err := wf.Services.LinkReview(ctx, serviceID, review.ID)
	if err != nil {
		// The review stays persisted but unlisted on its service.
		return nil, &LinkError{Err: err}
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	wf.State = StateComplete
	return &Result{Review: review, Service: *service}, nil
}

// mongoStore is the collection-backed implementation used in production.
type mongoStore struct{}

func (mongoStore) InsertReview(ctx context.Context, rv *models.Review) error {
	res, err := db.ReviewsCollection.InsertOne(ctx, *rv)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rv.ID = oid
	}
	return nil
}

func (mongoStore) LinkReview(ctx context.Context, serviceID, reviewID primitive.ObjectID) (*models.Service, error) {
	var updated models.Service
	err := db.ServicesCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": serviceID},
		bson.M{"$push": bson.M{"reviews": reviewID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}
