package reservations

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chefotw/db"
	"chefotw/mailer"
	"chefotw/middleware"
	"chefotw/models"
	"chefotw/populate"
	"chefotw/stripe"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workflow states, in order. The workflow halts at the first failing step
// and never rolls back what earlier steps persisted.
type State string

const (
	StateRequested             State = "requested"
	StatePriced                State = "priced"
	StatePaymentSessionCreated State = "payment_session_created"
	StateConfirmationSent      State = "confirmation_sent"
	StateComplete              State = "complete"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// PaymentError marks a checkout-session failure after the reservation was
// already persisted.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string { return "payment session failed: " + e.Err.Error() }
func (e *PaymentError) Unwrap() error { return e.Err }

// ServiceFinder resolves the target service with its owner populated.
// A nil result with a nil error means the service does not exist.
type ServiceFinder interface {
	FindServiceWithOwner(ctx context.Context, id primitive.ObjectID) (*models.ServicePopulated, error)
}

// ReservationInserter persists a new reservation, assigning its id.
type ReservationInserter interface {
	InsertReservation(ctx context.Context, res *models.Reservation) error
}

// ReserveInput is the request payload of a reservation.
type ReserveInput struct {
	FullName       string  `json:"fullName"`
	TotalPerson    int     `json:"totalPerson" validate:"required,gt=0"`
	PricePerPerson float64 `json:"pricePerPerson" validate:"required,gt=0"`
	Date           string  `json:"date" validate:"required"`
	Hour           string  `json:"hour" validate:"required"`
}

type ReserveResult struct {
	Reservation models.ReservationPopulated
	CheckoutURL string
}

// Workflow is a short-lived object driving one reservation from request to
// completion. Its State is observable after a partial failure.
type Workflow struct {
	Services ServiceFinder
	Store    ReservationInserter
	Payments stripe.CheckoutCreator
	Mailer   mailer.Sender
	Origin   string

	State State
}

// NewWorkflow builds a workflow backed by the Mongo collections.
func NewWorkflow(payments stripe.CheckoutCreator, m mailer.Sender, origin string) *Workflow {
	return &Workflow{
		Services: mongoStore{},
		Store:    mongoStore{},
		Payments: payments,
		Mailer:   m,
		Origin:   origin,
		State:    StateRequested,
	}
}

// Run executes the reservation workflow for the given principal.
func (wf *Workflow) Run(ctx context.Context, principal *middleware.Claims, serviceID primitive.ObjectID, input ReserveInput) (*ReserveResult, error) {
	wf.State = StateRequested

	service, err := wf.Services.FindServiceWithOwner(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	// Total price is always derived, never trusted from the caller.
	totalPrice := float64(input.TotalPerson) * input.PricePerPerson

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	var userID *primitive.ObjectID
	if oid, oidErr := primitive.ObjectIDFromHex(principal.ID); oidErr == nil {
		userID = &oid
	}

	now := time.Now()
	reservation := models.Reservation{
		User:           userID,
		Service:        serviceID,
		FullName:       input.FullName,
		TotalPerson:    input.TotalPerson,
		PricePerPerson: input.PricePerPerson,
		Date:           date,
		Hour:           input.Hour,
		TotalPrice:     totalPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := wf.Store.InsertReservation(ctx, &reservation); err != nil {
		return nil, err
	}
	wf.State = StatePriced

	session, err := wf.Payments.CreateCheckoutSession(
		fmt.Sprintf("Reservation for %d people", reservation.TotalPerson),
		reservation.TotalPrice,
		wf.Origin+"/reservations",
		wf.Origin+"/services",
	)
	if err != nil {
		// The reservation stays persisted; the caller sees a gateway error.
		return nil, &PaymentError{Err: err}
	}
	wf.State = StatePaymentSessionCreated

	wf.sendConfirmation(principal, service, reservation)
	wf.State = StateConfirmationSent

	user := &models.PublicUser{
		Email:   principal.Email,
		Name:    principal.Name,
		Address: principal.Address,
		Picture: principal.Picture,
	}
	if userID != nil {
		user.ID = *userID
	}

	wf.State = StateComplete
	return &ReserveResult{
		Reservation: reservation.Populated(service, user),
		CheckoutURL: session.URL,
	}, nil
}

// sendConfirmation mails both counter-parties. Failures are logged only.
func (wf *Workflow) sendConfirmation(principal *middleware.Claims, service *models.ServicePopulated, reservation models.Reservation) {
	if service.Owner == nil {
		log.Printf("reservation %s: service owner missing, skipping confirmation mail", reservation.ID.Hex())
		return
	}

	body := mailer.ReservationBody(mailer.ReservationDetails{
		OrderedBy:      principal.Name,
		UserEmail:      principal.Email,
		OwnerName:      service.Owner.Name,
		OwnerEmail:     service.Owner.Email,
		Address:        principal.Address,
		TotalPerson:    reservation.TotalPerson,
		PricePerPerson: reservation.PricePerPerson,
		TotalPrice:     reservation.TotalPrice,
		Date:           reservation.Date,
		Hour:           reservation.Hour,
	})

	if err := wf.Mailer.Send([]string{service.Owner.Email, principal.Email}, "New Reservation Confirmation", body); err != nil {
		log.Printf("Error sending reservation email: %v", err)
	}
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, s)
}

// mongoStore is the collection-backed implementation used in production.
type mongoStore struct{}

func (mongoStore) FindServiceWithOwner(ctx context.Context, id primitive.ObjectID) (*models.ServicePopulated, error) {
	return populate.ServiceWithOwner(ctx, id)
}

func (mongoStore) InsertReservation(ctx context.Context, res *models.Reservation) error {
	inserted, err := db.ReservationsCollection.InsertOne(ctx, *res)
	if err != nil {
		return err
	}
	if oid, ok := inserted.InsertedID.(primitive.ObjectID); ok {
		res.ID = oid
	}
	return nil
}
