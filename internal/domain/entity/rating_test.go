package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldFromEmpty(t *testing.T) {
	var agg RatingAggregate

	agg.Fold(5)

	assert.Equal(t, 1, agg.RatingCount)
	assert.Equal(t, 5.0, agg.AverageRating)
}

func TestFoldRunningMean(t *testing.T) {
	var agg RatingAggregate

	agg.Fold(5)
	agg.Fold(3)

	assert.Equal(t, 2, agg.RatingCount)
	assert.Equal(t, 4.0, agg.AverageRating)

	agg.Fold(1)

	assert.Equal(t, 3, agg.RatingCount)
	assert.InDelta(t, 3.0, agg.AverageRating, 1e-9)
}

func TestFoldMatchesArithmeticMean(t *testing.T) {
	ratings := []int{4, 2, 5, 5, 1, 3, 4, 2, 5, 3}

	var agg RatingAggregate
	sum := 0
	for _, r := range ratings {
		agg.Fold(r)
		sum += r
	}

	assert.Equal(t, len(ratings), agg.RatingCount)
	assert.InDelta(t, float64(sum)/float64(len(ratings)), agg.AverageRating, 1e-9)
}

func TestIsRatableKind(t *testing.T) {
	assert.True(t, IsRatableKind(ItemKindService))
	assert.True(t, IsRatableKind(ItemKindProduct))
	assert.False(t, IsRatableKind("jobs"))
	assert.False(t, IsRatableKind(""))
}
