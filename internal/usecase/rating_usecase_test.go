package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimarket/internal/domain/entity"
	"unimarket/pkg/errors"
)

// fakeRatingStore reproduces the document store's contract in memory: the
// whole submit runs under one lock per store, so conflicting submissions
// serialize the way Firestore's single-document transactions do.
type fakeRatingStore struct {
	mu      sync.Mutex
	items   map[string]*entity.RatingAggregate
	reviews map[string]*entity.Review
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{
		items:   make(map[string]*entity.RatingAggregate),
		reviews: make(map[string]*entity.Review),
	}
}

func (s *fakeRatingStore) addItem(kind, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[kind+"/"+itemID] = &entity.RatingAggregate{}
}

func (s *fakeRatingStore) aggregate(kind, itemID string) entity.RatingAggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.items[kind+"/"+itemID]
}

func (s *fakeRatingStore) reviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

func (s *fakeRatingStore) Submit(ctx context.Context, kind, itemID string, review *entity.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg, ok := s.items[kind+"/"+itemID]
	if !ok {
		return errors.NotFound("Item", nil)
	}

	reviewKey := kind + "/" + itemID + "/" + review.UserID
	if _, ok := s.reviews[reviewKey]; ok {
		return errors.Conflict("DUPLICATE_REVIEW", "You have already rated this item")
	}

	agg.Fold(review.Rating)

	review.ID = review.UserID
	review.ItemID = itemID
	review.ItemKind = kind
	review.CreatedAt = time.Now()
	stored := *review
	s.reviews[reviewKey] = &stored

	return nil
}

func (s *fakeRatingStore) HasUserRated(ctx context.Context, kind, itemID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.reviews[kind+"/"+itemID+"/"+userID]
	return ok, nil
}

func (s *fakeRatingStore) ListByItem(ctx context.Context, kind, itemID string, limit, offset int) ([]*entity.Review, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reviews []*entity.Review
	prefix := kind + "/" + itemID + "/"
	for key, review := range s.reviews {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			reviews = append(reviews, review)
		}
	}
	return reviews, int64(len(reviews)), nil
}

func (s *fakeRatingStore) WatchAggregate(ctx context.Context, kind, itemID string) (<-chan entity.RatingAggregate, error) {
	s.mu.Lock()
	agg, ok := s.items[kind+"/"+itemID]
	s.mu.Unlock()
	if !ok {
		return nil, errors.NotFound("Item", nil)
	}

	updates := make(chan entity.RatingAggregate, 1)
	updates <- *agg
	close(updates)
	return updates, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, errors.NotFound("User", nil)
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.NotFound("User", nil)
}
func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) SetPremium(ctx context.Context, id string, premium bool) error {
	return nil
}

func newRatingFixture() (*RatingUseCase, *fakeRatingStore) {
	store := newFakeRatingStore()
	users := &fakeUserRepo{users: map[string]*entity.User{}}
	return NewRatingUseCase(store, users), store
}

func TestSubmitRatingFirstReview(t *testing.T) {
	uc, store := newRatingFixture()
	store.addItem(entity.ItemKindService, "svc-1")

	review, err := uc.SubmitRating(context.Background(), entity.ItemKindService, "svc-1", "user-a", SubmitRatingInput{
		Rating:   5,
		UserName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-a", review.UserID)
	assert.Equal(t, 5, review.Rating)

	agg := store.aggregate(entity.ItemKindService, "svc-1")
	assert.Equal(t, 1, agg.RatingCount)
	assert.Equal(t, 5.0, agg.AverageRating)
}

func TestSubmitRatingScenarioWalkthrough(t *testing.T) {
	uc, store := newRatingFixture()
	store.addItem(entity.ItemKindProduct, "prod-1")
	ctx := context.Background()

	_, err := uc.SubmitRating(ctx, entity.ItemKindProduct, "prod-1", "user-a", SubmitRatingInput{Rating: 5})
	require.NoError(t, err)

	agg := store.aggregate(entity.ItemKindProduct, "prod-1")
	assert.Equal(t, entity.RatingAggregate{AverageRating: 5, RatingCount: 1}, agg)

	_, err = uc.SubmitRating(ctx, entity.ItemKindProduct, "prod-1", "user-b", SubmitRatingInput{Rating: 3})
	require.NoError(t, err)

	agg = store.aggregate(entity.ItemKindProduct, "prod-1")
	assert.Equal(t, entity.RatingAggregate{AverageRating: 4, RatingCount: 2}, agg)

	// A second submission from user-a must fail and change nothing.
	_, err = uc.SubmitRating(ctx, entity.ItemKindProduct, "prod-1", "user-a", SubmitRatingInput{Rating: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "DUPLICATE_REVIEW"))

	agg = store.aggregate(entity.ItemKindProduct, "prod-1")
	assert.Equal(t, entity.RatingAggregate{AverageRating: 4, RatingCount: 2}, agg)
	assert.Equal(t, 2, store.reviewCount())
}

func TestSubmitRatingItemNotFound(t *testing.T) {
	uc, store := newRatingFixture()

	_, err := uc.SubmitRating(context.Background(), entity.ItemKindService, "missing", "user-a", SubmitRatingInput{Rating: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Equal(t, 0, store.reviewCount())
}

func TestSubmitRatingValidation(t *testing.T) {
	uc, store := newRatingFixture()
	store.addItem(entity.ItemKindService, "svc-1")
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := uc.SubmitRating(ctx, entity.ItemKindService, "svc-1", "user-a", SubmitRatingInput{Rating: rating})
		require.Error(t, err, "rating %d", rating)
		assert.True(t, errors.Is(err, "INVALID_RATING"))
	}

	_, err := uc.SubmitRating(ctx, "jobs", "job-1", "user-a", SubmitRatingInput{Rating: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	assert.Equal(t, 0, store.reviewCount())
	agg := store.aggregate(entity.ItemKindService, "svc-1")
	assert.Equal(t, 0, agg.RatingCount)
	assert.Equal(t, 0.0, agg.AverageRating)
}

func TestSubmitRatingConcurrentNoLostUpdate(t *testing.T) {
	uc, store := newRatingFixture()
	store.addItem(entity.ItemKindService, "svc-1")

	// Two racing first-time submissions against a fresh item.
	var wg sync.WaitGroup
	for _, submission := range []struct {
		userID string
		rating int
	}{
		{"user-a", 4},
		{"user-b", 2},
	} {
		wg.Add(1)
		go func(userID string, rating int) {
			defer wg.Done()
			_, err := uc.SubmitRating(context.Background(), entity.ItemKindService, "svc-1", userID, SubmitRatingInput{Rating: rating})
			assert.NoError(t, err)
		}(submission.userID, submission.rating)
	}
	wg.Wait()

	agg := store.aggregate(entity.ItemKindService, "svc-1")
	assert.Equal(t, 2, agg.RatingCount)
	assert.Equal(t, 3.0, agg.AverageRating)
}

func TestSubmitRatingConcurrentManyUsers(t *testing.T) {
	uc, store := newRatingFixture()
	store.addItem(entity.ItemKindProduct, "prod-1")

	const n = 50
	sum := 0
	ratings := make([]int, n)
	for i := range ratings {
		ratings[i] = (i % 5) + 1
		sum += ratings[i]
	}

	var wg sync.WaitGroup
	for i, rating := range ratings {
		wg.Add(1)
		go func(userID string, rating int) {
			defer wg.Done()
			_, err := uc.SubmitRating(context.Background(), entity.ItemKindProduct, "prod-1", userID, SubmitRatingInput{Rating: rating})
			assert.NoError(t, err)
		}(fmt.Sprintf("user-%d", i), rating)
	}
	wg.Wait()

	agg := store.aggregate(entity.ItemKindProduct, "prod-1")
	assert.Equal(t, n, agg.RatingCount)
	assert.InDelta(t, float64(sum)/float64(n), agg.AverageRating, 1e-9)
	assert.Equal(t, n, store.reviewCount())
}

func TestSubmitRatingFillsRaterMetadataFromProfile(t *testing.T) {
	store := newFakeRatingStore()
	store.addItem(entity.ItemKindService, "svc-1")
	users := &fakeUserRepo{users: map[string]*entity.User{
		"user-a": {ID: "user-a", DisplayName: "Alice", PhotoURL: "https://example.com/a.png"},
	}}
	uc := NewRatingUseCase(store, users)

	review, err := uc.SubmitRating(context.Background(), entity.ItemKindService, "svc-1", "user-a", SubmitRatingInput{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, "Alice", review.UserName)
	assert.Equal(t, "https://example.com/a.png", review.UserPhotoURL)
}

func TestWatchItemAggregateRejectsUnknownKind(t *testing.T) {
	uc, _ := newRatingFixture()

	_, err := uc.WatchItemAggregate(context.Background(), "jobs", "job-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestListItemReviews(t *testing.T) {
	uc, store := newRatingFixture()
	store.addItem(entity.ItemKindService, "svc-1")
	ctx := context.Background()

	_, err := uc.SubmitRating(ctx, entity.ItemKindService, "svc-1", "user-a", SubmitRatingInput{Rating: 5})
	require.NoError(t, err)
	_, err = uc.SubmitRating(ctx, entity.ItemKindService, "svc-1", "user-b", SubmitRatingInput{Rating: 3})
	require.NoError(t, err)

	reviews, total, err := uc.ListItemReviews(ctx, entity.ItemKindService, "svc-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, reviews, 2)
}
