package entity

import (
	"time"
)

// PremiumRequest is a manual payment-verification request: the user uploads a
// transfer screenshot and an admin approves or rejects it. There is no payment
// gateway in this flow.
type PremiumRequest struct {
	ID            string     `json:"id" firestore:"id"`
	UserID        string     `json:"user_id" firestore:"userId"`
	UserEmail     string     `json:"user_email" firestore:"userEmail"`
	ScreenshotURL string     `json:"screenshot_url" firestore:"screenshotURL"`
	Note          string     `json:"note,omitempty" firestore:"note,omitempty"`
	Status        string     `json:"status" firestore:"status"` // "pending", "approved", "rejected"
	AdminNote     string     `json:"admin_note,omitempty" firestore:"adminNote,omitempty"`
	ResolvedBy    string     `json:"resolved_by,omitempty" firestore:"resolvedBy,omitempty"`
	CreatedAt     time.Time  `json:"created_at" firestore:"createdAt"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
}
