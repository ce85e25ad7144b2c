package repository

import (
	"context"

	"unimarket/internal/domain/entity"
)

// RatingRepository maintains the denormalized rating aggregate on ratable
// listings together with the review set that backs it.
type RatingRepository interface {
	// Submit applies one review atomically: inside a single transaction it
	// re-checks that the (item, user) pair has no review, folds the rating
	// into the item's aggregate and creates the review record. Either all of
	// that commits or none of it does. Returns a DUPLICATE_REVIEW error when
	// the pair already rated, NOT_FOUND when the item does not exist.
	Submit(ctx context.Context, kind, itemID string, review *entity.Review) error

	// HasUserRated is a cheap read-only duplicate check for the common path.
	// It is advisory only; Submit re-checks inside the transaction.
	HasUserRated(ctx context.Context, kind, itemID, userID string) (bool, error)

	ListByItem(ctx context.Context, kind, itemID string, limit, offset int) ([]*entity.Review, int64, error)

	// WatchAggregate streams the item's aggregate on every committed change.
	// The subscription ends when ctx is cancelled; the returned channel is
	// closed on teardown.
	WatchAggregate(ctx context.Context, kind, itemID string) (<-chan entity.RatingAggregate, error)
}
