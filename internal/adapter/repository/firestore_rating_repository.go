package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"unimarket/internal/domain/entity"
	"unimarket/internal/domain/repository"
	"unimarket/pkg/errors"
	"unimarket/pkg/logger"
)

type firestoreRatingRepository struct {
	client *firestore.Client
}

func NewFirestoreRatingRepository(client *firestore.Client) repository.RatingRepository {
	return &firestoreRatingRepository{
		client: client,
	}
}

// Submit runs the whole read-modify-write as one Firestore transaction. The
// review lives at {kind}/{itemID}/reviews/{userID}; the deterministic doc id
// doubles as the uniqueness guard, so two racing first-time submissions from
// the same user cannot both commit. Firestore retries the transaction body on
// contention, which is what keeps concurrent folds from losing updates.
func (r *firestoreRatingRepository) Submit(ctx context.Context, kind, itemID string, review *entity.Review) error {
	itemRef := r.client.Collection(kind).Doc(itemID)
	reviewRef := itemRef.Collection("reviews").Doc(review.UserID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		itemDoc, err := tx.Get(itemRef)
		if err != nil {
			return err
		}

		_, err = tx.Get(reviewRef)
		if err == nil {
			return errors.Conflict("DUPLICATE_REVIEW", "You have already rated this item")
		}
		if status.Code(err) != codes.NotFound {
			return err
		}

		// Both fields default to zero on listings created before the
		// aggregate existed.
		var agg entity.RatingAggregate
		if err := itemDoc.DataTo(&agg); err != nil {
			return err
		}
		agg.Fold(review.Rating)

		if err := tx.Update(itemRef, []firestore.Update{
			{Path: "averageRating", Value: agg.AverageRating},
			{Path: "ratingCount", Value: agg.RatingCount},
		}); err != nil {
			return err
		}

		review.ID = reviewRef.ID
		review.ItemID = itemID
		review.ItemKind = kind
		return tx.Create(reviewRef, review)
	})

	if err != nil {
		if errors.Is(err, "DUPLICATE_REVIEW") {
			return err
		}
		switch status.Code(err) {
		case codes.NotFound:
			return errors.NotFound("Item", err)
		case codes.Unavailable, codes.DeadlineExceeded:
			return errors.Unavailable("Store temporarily unavailable", err)
		}
		logger.Error("Rating submit transaction failed: kind=%s item=%s: %v", kind, itemID, err)
		return errors.Internal("Failed to submit rating", err)
	}

	return nil
}

func (r *firestoreRatingRepository) HasUserRated(ctx context.Context, kind, itemID, userID string) (bool, error) {
	_, err := r.client.Collection(kind).Doc(itemID).Collection("reviews").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check existing review", err)
	}
	return true, nil
}

func (r *firestoreRatingRepository) ListByItem(ctx context.Context, kind, itemID string, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.client.Collection(kind).Doc(itemID).Collection("reviews").
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reviews", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var reviews []*entity.Review

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate reviews", err)
		}
		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, 0, errors.Internal("Failed to parse review data", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, total, nil
}

// WatchAggregate subscribes to the listing document and forwards its aggregate
// after every committed change. The goroutine exits and closes the channel
// when ctx is cancelled, which is how consumers tear the subscription down.
func (r *firestoreRatingRepository) WatchAggregate(ctx context.Context, kind, itemID string) (<-chan entity.RatingAggregate, error) {
	doc, err := r.client.Collection(kind).Doc(itemID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Item", err)
		}
		return nil, errors.Internal("Failed to get item", err)
	}

	updates := make(chan entity.RatingAggregate, 1)

	var agg entity.RatingAggregate
	if err := doc.DataTo(&agg); err == nil {
		updates <- agg
	}

	snapshots := r.client.Collection(kind).Doc(itemID).Snapshots(ctx)

	go func() {
		defer close(updates)
		defer snapshots.Stop()

		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					logger.Warn("Aggregate watch ended: kind=%s item=%s: %v", kind, itemID, err)
				}
				return
			}
			if !snap.Exists() {
				return
			}

			var agg entity.RatingAggregate
			if err := snap.DataTo(&agg); err != nil {
				logger.Warn("Failed to parse aggregate snapshot: %v", err)
				continue
			}

			select {
			case updates <- agg:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, nil
}
