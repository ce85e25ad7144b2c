package usecase

import (
	"context"
	"net/http"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
)

// RatingUseCase applies one-time ratings to listings and keeps the
// denormalized (averageRating, ratingCount) pair consistent with the review
// set. The transaction boundary lives in the repository; this layer validates
// input, runs the cheap duplicate pre-check and maps failures.
type RatingUseCase struct {
	ratingRepo repository.RatingRepository
	userRepo   repository.UserRepository
}

func NewRatingUseCase(ratingRepo repository.RatingRepository, userRepo repository.UserRepository) *RatingUseCase {
	return &RatingUseCase{
		ratingRepo: ratingRepo,
		userRepo:   userRepo,
	}
}

type SubmitRatingInput struct {
	Rating       int
	UserName     string
	UserPhotoURL string
}

// SubmitRating records one rating for (itemKind/itemID, userID). Exactly one
// review is created and exactly one aggregate update applied, or neither.
// Retrying after a transient failure is safe: the duplicate check is
// idempotent and re-runs inside the transaction.
func (uc *RatingUseCase) SubmitRating(ctx context.Context, itemKind, itemID, userID string, input SubmitRatingInput) (*entity.Review, error) {
	if !entity.IsRatableKind(itemKind) {
		return nil, errors.BadRequest("Unknown item kind", nil)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.New("INVALID_RATING", "Rating must be between 1 and 5", http.StatusBadRequest, nil)
	}

	// Fast path for the common duplicate case, one cheap read instead of a
	// transaction. Advisory only; the repository re-checks atomically.
	rated, err := uc.ratingRepo.HasUserRated(ctx, itemKind, itemID, userID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, errors.Conflict("DUPLICATE_REVIEW", "You have already rated this item")
	}

	// Rater metadata is denormalized onto the review so listing reviews
	// never needs a join. Fall back to the profile when the caller sends none.
	if input.UserName == "" {
		if user, err := uc.userRepo.GetByID(ctx, userID); err == nil {
			input.UserName = user.DisplayName
			if input.UserPhotoURL == "" {
				input.UserPhotoURL = user.PhotoURL
			}
		}
	}

	review := &entity.Review{
		UserID:       userID,
		UserName:     input.UserName,
		UserPhotoURL: input.UserPhotoURL,
		Rating:       input.Rating,
	}

	if err := uc.ratingRepo.Submit(ctx, itemKind, itemID, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (uc *RatingUseCase) ListItemReviews(ctx context.Context, itemKind, itemID string, page, limit int) ([]*entity.Review, int64, error) {
	if !entity.IsRatableKind(itemKind) {
		return nil, 0, errors.BadRequest("Unknown item kind", nil)
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.ratingRepo.ListByItem(ctx, itemKind, itemID, limit, offset)
}

// WatchItemAggregate streams the item's aggregate on every committed change
// until ctx is cancelled.
func (uc *RatingUseCase) WatchItemAggregate(ctx context.Context, itemKind, itemID string) (<-chan entity.RatingAggregate, error) {
	if !entity.IsRatableKind(itemKind) {
		return nil, errors.BadRequest("Unknown item kind", nil)
	}

	return uc.ratingRepo.WatchAggregate(ctx, itemKind, itemID)
}
