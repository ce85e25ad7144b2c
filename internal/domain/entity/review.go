package entity

import (
	"time"
)

// Review is a single user's one-time rating of a listing. The document id is
// the rater's uid inside the item's reviews subcollection, so a second write
// for the same (item, user) pair collides inside the submit transaction.
type Review struct {
	ID           string    `json:"id" firestore:"id"`
	ItemID       string    `json:"item_id" firestore:"itemId"`
	ItemKind     string    `json:"item_kind" firestore:"itemKind"`
	UserID       string    `json:"user_id" firestore:"userId"`
	UserName     string    `json:"user_name,omitempty" firestore:"userName,omitempty"`
	UserPhotoURL string    `json:"user_photo_url,omitempty" firestore:"userPhotoURL,omitempty"`
	Rating       int       `json:"rating" firestore:"rating"` // 1-5
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
