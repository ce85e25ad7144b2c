package entity

import (
	"time"
)

// Job is a part-time or gig posting on the community job board.
type Job struct {
	ID          string  `json:"id" firestore:"id"`
	PosterID    string  `json:"poster_id" firestore:"posterId"`
	Title       string  `json:"title" firestore:"title"`
	Description string  `json:"description" firestore:"description"`
	Category    string  `json:"category" firestore:"category"`
	Location    string  `json:"location,omitempty" firestore:"location,omitempty"`
	Pay         float64 `json:"pay" firestore:"pay"`
	PayUnit     string  `json:"pay_unit,omitempty" firestore:"payUnit,omitempty"` // "hour", "day", "fixed"
	Status      string  `json:"status" firestore:"status"`                        // "open", "closed"

	ApplicantCount int `json:"applicant_count" firestore:"applicantCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// JobApplication is one user's application to a job. One per (job, user);
// the document id is "{jobId}_{userId}" so a re-apply collides on create.
type JobApplication struct {
	ID           string     `json:"id" firestore:"id"`
	JobID        string     `json:"job_id" firestore:"jobId"`
	ApplicantID  string     `json:"applicant_id" firestore:"applicantId"`
	Message      string     `json:"message,omitempty" firestore:"message,omitempty"`
	ContactPhone string     `json:"contact_phone,omitempty" firestore:"contactPhone,omitempty"`
	Status       string     `json:"status" firestore:"status"` // "applied", "withdrawn", "accepted", "rejected"
	CreatedAt    time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time  `json:"updated_at" firestore:"updatedAt"`
	WithdrawnAt  *time.Time `json:"withdrawn_at,omitempty" firestore:"withdrawnAt,omitempty"`
}
