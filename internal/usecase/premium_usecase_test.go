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

type fakePremiumStore struct {
	mu       sync.Mutex
	requests map[string]*entity.PremiumRequest
	nextID   int
}

func newFakePremiumStore() *fakePremiumStore {
	return &fakePremiumStore{requests: make(map[string]*entity.PremiumRequest)}
}

func (s *fakePremiumStore) Create(ctx context.Context, request *entity.PremiumRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	request.ID = fmt.Sprintf("req-%d", s.nextID)
	request.CreatedAt = time.Now()
	stored := *request
	s.requests[request.ID] = &stored
	return nil
}

func (s *fakePremiumStore) GetByID(ctx context.Context, id string) (*entity.PremiumRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[id]
	if !ok {
		return nil, errors.NotFound("Premium request", nil)
	}
	copied := *request
	return &copied, nil
}

func (s *fakePremiumStore) GetPendingByUserID(ctx context.Context, userID string) (*entity.PremiumRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, request := range s.requests {
		if request.UserID == userID && request.Status == "pending" {
			copied := *request
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Premium request", nil)
}

func (s *fakePremiumStore) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.PremiumRequest, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var requests []*entity.PremiumRequest
	for _, request := range s.requests {
		if request.UserID == userID {
			copied := *request
			requests = append(requests, &copied)
		}
	}
	return requests, int64(len(requests)), nil
}

func (s *fakePremiumStore) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.PremiumRequest, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var requests []*entity.PremiumRequest
	for _, request := range s.requests {
		if status == "" || request.Status == status {
			copied := *request
			requests = append(requests, &copied)
		}
	}
	return requests, int64(len(requests)), nil
}

func (s *fakePremiumStore) Update(ctx context.Context, request *entity.PremiumRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[request.ID]; !ok {
		return errors.NotFound("Premium request", nil)
	}
	stored := *request
	s.requests[request.ID] = &stored
	return nil
}

// fakePremiumUserRepo records SetPremium calls so grants can be asserted.
type fakePremiumUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (r *fakePremiumUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (r *fakePremiumUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakePremiumUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.NotFound("User", nil)
}

func (r *fakePremiumUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakePremiumUserRepo) SetPremium(ctx context.Context, id string, premium bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Premium = premium
	return nil
}

func newPremiumFixture() (*PremiumUseCase, *fakePremiumStore, *fakePremiumUserRepo) {
	store := newFakePremiumStore()
	users := &fakePremiumUserRepo{users: map[string]*entity.User{
		"user-a": {ID: "user-a", Email: "a@campus.edu"},
		"admin":  {ID: "admin", Email: "admin@campus.edu", Role: "admin"},
	}}
	return NewPremiumUseCase(store, users), store, users
}

func TestSubmitPremiumRequest(t *testing.T) {
	uc, _, _ := newPremiumFixture()

	request, err := uc.SubmitRequest(context.Background(), "user-a", "https://example.com/transfer.png", "paid via bank")
	require.NoError(t, err)
	assert.Equal(t, "pending", request.Status)
	assert.Equal(t, "a@campus.edu", request.UserEmail)
}

func TestSubmitPremiumRequestOnePendingRule(t *testing.T) {
	uc, _, _ := newPremiumFixture()
	ctx := context.Background()

	_, err := uc.SubmitRequest(ctx, "user-a", "https://example.com/1.png", "")
	require.NoError(t, err)

	_, err = uc.SubmitRequest(ctx, "user-a", "https://example.com/2.png", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "PENDING_REQUEST"))
}

func TestSubmitPremiumRequestAlreadyPremium(t *testing.T) {
	uc, _, users := newPremiumFixture()
	users.users["user-a"].Premium = true

	_, err := uc.SubmitRequest(context.Background(), "user-a", "https://example.com/1.png", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestResolveApprovalGrantsPremium(t *testing.T) {
	uc, _, users := newPremiumFixture()
	ctx := context.Background()

	request, err := uc.SubmitRequest(ctx, "user-a", "https://example.com/1.png", "")
	require.NoError(t, err)

	resolved, err := uc.Resolve(ctx, "admin", request.ID, "approved", "verified")
	require.NoError(t, err)
	assert.Equal(t, "approved", resolved.Status)
	assert.Equal(t, "admin", resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAt)

	user, err := users.GetByID(ctx, "user-a")
	require.NoError(t, err)
	assert.True(t, user.Premium)
}

func TestResolveRejectionLeavesUserUnchanged(t *testing.T) {
	uc, _, users := newPremiumFixture()
	ctx := context.Background()

	request, err := uc.SubmitRequest(ctx, "user-a", "https://example.com/1.png", "")
	require.NoError(t, err)

	resolved, err := uc.Resolve(ctx, "admin", request.ID, "rejected", "screenshot unreadable")
	require.NoError(t, err)
	assert.Equal(t, "rejected", resolved.Status)

	user, err := users.GetByID(ctx, "user-a")
	require.NoError(t, err)
	assert.False(t, user.Premium)

	// A rejection clears the pending slot, so the user may try again.
	_, err = uc.SubmitRequest(ctx, "user-a", "https://example.com/2.png", "")
	require.NoError(t, err)
}

func TestResolveTwiceFails(t *testing.T) {
	uc, _, _ := newPremiumFixture()
	ctx := context.Background()

	request, err := uc.SubmitRequest(ctx, "user-a", "https://example.com/1.png", "")
	require.NoError(t, err)

	_, err = uc.Resolve(ctx, "admin", request.ID, "approved", "")
	require.NoError(t, err)

	_, err = uc.Resolve(ctx, "admin", request.ID, "rejected", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "ALREADY_RESOLVED"))
}

func TestResolveValidatesDecision(t *testing.T) {
	uc, _, _ := newPremiumFixture()

	_, err := uc.Resolve(context.Background(), "admin", "req-1", "maybe", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
