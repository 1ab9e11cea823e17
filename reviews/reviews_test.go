package reviews

import (
	"context"
	"errors"
	"testing"

	"chefotw/middleware"
	"chefotw/models"
	"chefotw/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeReviewStore struct {
	inserted []*models.Review
	err      error
}

func (f *fakeReviewStore) InsertReview(_ context.Context, rv *models.Review) error {
	if f.err != nil {
		return f.err
	}
	rv.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, rv)
	return nil
}

type fakeLinker struct {
	service *models.Service
	err     error
	linked  []primitive.ObjectID
}

func (f *fakeLinker) LinkReview(_ context.Context, _, reviewID primitive.ObjectID) (*models.Service, error) {
	f.linked = append(f.linked, reviewID)
	if f.err != nil {
		return nil, f.err
	}
	if f.service == nil {
		return nil, nil
	}
	updated := *f.service
	updated.Reviews = append(append([]primitive.ObjectID{}, f.service.Reviews...), reviewID)
	return &updated, nil
}

func testAuthor() *middleware.Claims {
	return &middleware.Claims{
		ID:      primitive.NewObjectID().Hex(),
		Email:   "guest@gmail.com",
		Name:    "Guest",
		Picture: "/static/uploads/guest.png",
	}
}

func newTestWorkflow(store *fakeReviewStore, linker *fakeLinker) *Workflow {
	return &Workflow{Reviews: store, Services: linker, State: StateRequested}
}

func TestReviewWorkflowComplete(t *testing.T) {
	store := &fakeReviewStore{}
	linker := &fakeLinker{service: &models.Service{ID: primitive.NewObjectID(), Speciality: "Italian"}}
	wf := newTestWorkflow(store, linker)

	author := testAuthor()
	result, err := wf.Run(context.Background(), author, linker.service.ID, primitive.NewObjectID(), "great food", 5)
	require.NoError(t, err)
	assert.Equal(t, StateComplete, wf.State)

	// the service lists the new review id exactly once
	require.Len(t, store.inserted, 1)
	reviewID := store.inserted[0].ID
	count := 0
	for _, id := range result.Service.Reviews {
		if id == reviewID {
			count++
		}
	}
	assert.Equal(t, 1, count)
	require.Len(t, linker.linked, 1)
	assert.Equal(t, reviewID, linker.linked[0])

	// author's display fields are snapshotted on the review
	assert.Equal(t, "Guest", result.Review.Name)
	assert.Equal(t, "/static/uploads/guest.png", result.Review.Picture)
	assert.Equal(t, 5, result.Review.Rating)
}

func TestReviewWorkflowLinkFailureKeepsReview(t *testing.T) {
	store := &fakeReviewStore{}
	linker := &fakeLinker{err: errors.New("connection reset")}
	wf := newTestWorkflow(store, linker)

	_, err := wf.Run(context.Background(), testAuthor(), primitive.NewObjectID(), primitive.NewObjectID(), "great food", 4)

	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)

	// no rollback: the review stays persisted but unlisted
	assert.Len(t, store.inserted, 1)
	assert.Equal(t, StateStored, wf.State)
}

func TestReviewWorkflowServiceMissing(t *testing.T) {
	store := &fakeReviewStore{}
	linker := &fakeLinker{}
	wf := newTestWorkflow(store, linker)

	_, err := wf.Run(context.Background(), testAuthor(), primitive.NewObjectID(), primitive.NewObjectID(), "great food", 4)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Len(t, store.inserted, 1)
	assert.Equal(t, StateStored, wf.State)
}

func TestReviewWorkflowInsertFailure(t *testing.T) {
	store := &fakeReviewStore{err: errors.New("write refused")}
	linker := &fakeLinker{}
	wf := newTestWorkflow(store, linker)

	_, err := wf.Run(context.Background(), testAuthor(), primitive.NewObjectID(), primitive.NewObjectID(), "great food", 4)
	require.Error(t, err)
	assert.Equal(t, StateRequested, wf.State)
	assert.Empty(t, linker.linked)
}

func TestUpdateReviewInputValidation(t *testing.T) {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }

	cases := []struct {
		name    string
		input   updateReviewInput
		wantErr bool
	}{
		{"description only", updateReviewInput{Description: str("edited")}, false},
		{"rating only", updateReviewInput{Rating: num(3)}, false},
		{"both", updateReviewInput{Description: str("edited"), Rating: num(1)}, false},
		{"rating too high", updateReviewInput{Rating: num(6)}, true},
		{"rating too low", updateReviewInput{Rating: num(0)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := utils.ValidateStruct(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
