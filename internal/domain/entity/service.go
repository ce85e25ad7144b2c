package entity

import (
	"time"
)

type ServiceImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

// Service is an offered service listing (tutoring, design, repairs, ...).
type Service struct {
	ID          string         `json:"id" firestore:"id"`
	OwnerID     string         `json:"owner_id" firestore:"ownerId"`
	Title       string         `json:"title" firestore:"title"`
	Description string         `json:"description" firestore:"description"`
	Category    string         `json:"category" firestore:"category"`
	Price       float64        `json:"price" firestore:"price"`
	PriceUnit   string         `json:"price_unit,omitempty" firestore:"priceUnit,omitempty"` // "hour", "session", "fixed"
	Images      []ServiceImage `json:"images" firestore:"images"`
	Status      string         `json:"status" firestore:"status"` // "active", "paused", "deleted"

	AverageRating float64 `json:"average_rating" firestore:"averageRating"`
	RatingCount   int     `json:"rating_count" firestore:"ratingCount"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt"`
}
