package reservations

import (
	"context"
	"errors"
	"testing"

	"chefotw/middleware"
	"chefotw/models"
	"chefotw/stripe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeServiceFinder struct {
	service *models.ServicePopulated
	err     error
}

func (f *fakeServiceFinder) FindServiceWithOwner(_ context.Context, _ primitive.ObjectID) (*models.ServicePopulated, error) {
	return f.service, f.err
}

type fakeStore struct {
	inserted *models.Reservation
	err      error
}

func (f *fakeStore) InsertReservation(_ context.Context, res *models.Reservation) error {
	if f.err != nil {
		return f.err
	}
	res.ID = primitive.NewObjectID()
	f.inserted = res
	return nil
}

type fakePayments struct {
	url   string
	err   error
	calls int
}

func (f *fakePayments) CreateCheckoutSession(_ string, _ float64, _, _ string) (stripe.CheckoutSession, error) {
	f.calls++
	if f.err != nil {
		return stripe.CheckoutSession{}, f.err
	}
	return stripe.CheckoutSession{ID: "cs_test", URL: f.url}, nil
}

type fakeMailer struct {
	sentTo   [][]string
	subjects []string
	err      error
}

func (f *fakeMailer) Send(to []string, subject, _ string) error {
	f.sentTo = append(f.sentTo, to)
	f.subjects = append(f.subjects, subject)
	return f.err
}

func testService() *models.ServicePopulated {
	return &models.ServicePopulated{
		ID:             primitive.NewObjectID(),
		Speciality:     "Italian",
		PricePerPerson: 20,
		Owner: &models.PublicUser{
			ID:    primitive.NewObjectID(),
			Email: "owner@gmail.com",
			Name:  "Owner",
		},
	}
}

func testPrincipal() *middleware.Claims {
	return &middleware.Claims{
		ID:      primitive.NewObjectID().Hex(),
		Email:   "guest@gmail.com",
		Name:    "Guest",
		Address: "1 Main St",
	}
}

func testInput() ReserveInput {
	return ReserveInput{
		FullName:       "Guest Person",
		TotalPerson:    4,
		PricePerPerson: 20,
		Date:           "2026-10-01",
		Hour:           "19:00",
	}
}

func newTestWorkflow(finder ServiceFinder, store ReservationInserter, payments stripe.CheckoutCreator, m *fakeMailer) *Workflow {
	return &Workflow{
		Services: finder,
		Store:    store,
		Payments: payments,
		Mailer:   m,
		Origin:   "http://localhost:5173",
		State:    StateRequested,
	}
}

func TestWorkflowComplete(t *testing.T) {
	store := &fakeStore{}
	payments := &fakePayments{url: "https://checkout.test/cs_test"}
	mail := &fakeMailer{}
	wf := newTestWorkflow(&fakeServiceFinder{service: testService()}, store, payments, mail)

	result, err := wf.Run(context.Background(), testPrincipal(), primitive.NewObjectID(), testInput())
	require.NoError(t, err)

	assert.Equal(t, StateComplete, wf.State)
	assert.Equal(t, float64(80), result.Reservation.TotalPrice)
	assert.Equal(t, "https://checkout.test/cs_test", result.CheckoutURL)

	require.NotNil(t, store.inserted)
	assert.Equal(t, float64(80), store.inserted.TotalPrice)
	assert.False(t, store.inserted.ID.IsZero())

	// both counter-parties are mailed once
	require.Len(t, mail.sentTo, 1)
	assert.Equal(t, []string{"owner@gmail.com", "guest@gmail.com"}, mail.sentTo[0])
	assert.Equal(t, "New Reservation Confirmation", mail.subjects[0])
}

func TestWorkflowServiceMissing(t *testing.T) {
	store := &fakeStore{}
	wf := newTestWorkflow(&fakeServiceFinder{}, store, &fakePayments{}, &fakeMailer{})

	_, err := wf.Run(context.Background(), testPrincipal(), primitive.NewObjectID(), testInput())
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Nil(t, store.inserted)
	assert.Equal(t, StateRequested, wf.State)
}

func TestWorkflowPaymentFailureKeepsReservation(t *testing.T) {
	store := &fakeStore{}
	payments := &fakePayments{err: errors.New("gateway down")}
	mail := &fakeMailer{}
	wf := newTestWorkflow(&fakeServiceFinder{service: testService()}, store, payments, mail)

	_, err := wf.Run(context.Background(), testPrincipal(), primitive.NewObjectID(), testInput())

	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)

	// no rollback: the reservation stays persisted and no mail goes out
	assert.NotNil(t, store.inserted)
	assert.Equal(t, StatePriced, wf.State)
	assert.Empty(t, mail.sentTo)
}

func TestWorkflowMailFailureDoesNotFail(t *testing.T) {
	store := &fakeStore{}
	mail := &fakeMailer{err: errors.New("relay refused")}
	wf := newTestWorkflow(&fakeServiceFinder{service: testService()}, store, &fakePayments{url: "https://checkout.test/x"}, mail)

	result, err := wf.Run(context.Background(), testPrincipal(), primitive.NewObjectID(), testInput())
	require.NoError(t, err)
	assert.Equal(t, StateComplete, wf.State)
	assert.NotEmpty(t, result.CheckoutURL)
}

func TestWorkflowInvalidDate(t *testing.T) {
	store := &fakeStore{}
	wf := newTestWorkflow(&fakeServiceFinder{service: testService()}, store, &fakePayments{}, &fakeMailer{})

	input := testInput()
	input.Date = "next tuesday"
	_, err := wf.Run(context.Background(), testPrincipal(), primitive.NewObjectID(), input)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, store.inserted)
}

func TestWorkflowTotalAlwaysDerived(t *testing.T) {
	cases := []struct {
		persons int
		price   float64
		want    float64
	}{
		{1, 10, 10},
		{4, 20, 80},
		{3, 12.5, 37.5},
	}

	for _, c := range cases {
		store := &fakeStore{}
		wf := newTestWorkflow(&fakeServiceFinder{service: testService()}, store, &fakePayments{url: "u"}, &fakeMailer{})

		input := testInput()
		input.TotalPerson = c.persons
		input.PricePerPerson = c.price

		result, err := wf.Run(context.Background(), testPrincipal(), primitive.NewObjectID(), input)
		require.NoError(t, err)
		assert.Equal(t, c.want, result.Reservation.TotalPrice)
	}
}
