package entity

// Item kinds that can accumulate ratings. Each maps to its own collection.
const (
	ItemKindService = "services"
	ItemKindProduct = "products"
)

func IsRatableKind(kind string) bool {
	return kind == ItemKindService || kind == ItemKindProduct
}

// RatingAggregate is the denormalized rating cache carried on every ratable
// listing. Both fields read as zero on records created before the aggregate
// fields existed.
type RatingAggregate struct {
	AverageRating float64 `json:"average_rating" firestore:"averageRating"`
	RatingCount   int     `json:"rating_count" firestore:"ratingCount"`
}

// Fold adds one rating to the running mean. Invariant: AverageRating stays
// equal to sum(ratings)/RatingCount, and 0 while RatingCount is 0.
func (a *RatingAggregate) Fold(rating int) {
	total := a.AverageRating * float64(a.RatingCount)
	a.RatingCount++
	a.AverageRating = (total + float64(rating)) / float64(a.RatingCount)
}
