package entity

import (
	"time"
)

type ProductImage struct {
	ID           string `json:"id" firestore:"id"`
	URL          string `json:"url" firestore:"url"`
	DisplayOrder int    `json:"display_order" firestore:"displayOrder"`
}

// Product is a physical or digital item listed for sale.
type Product struct {
	ID          string         `json:"id" firestore:"id"`
	OwnerID     string         `json:"owner_id" firestore:"ownerId"`
	Title       string         `json:"title" firestore:"title"`
	Description string         `json:"description" firestore:"description"`
	Category    string         `json:"category" firestore:"category"`
	Price       float64        `json:"price" firestore:"price"`
	Condition   string         `json:"condition,omitempty" firestore:"condition,omitempty"` // "new", "used"
	Stock       int            `json:"stock" firestore:"stock"`
	Images      []ProductImage `json:"images" firestore:"images"`
	Status      string         `json:"status" firestore:"status"` // "active", "sold", "deleted"

	AverageRating float64 `json:"average_rating" firestore:"averageRating"`
	RatingCount   int     `json:"rating_count" firestore:"ratingCount"`

	Views     int        `json:"views" firestore:"views"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt"`
}
