package entity

import (
	"time"
)

type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	Phone       string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Bio         string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Role        string `json:"role" firestore:"role"` // "student" or "admin"
	Status      string `json:"status" firestore:"status"`

	Faculty      string `json:"faculty,omitempty" firestore:"faculty,omitempty"`
	StudentID    string `json:"student_id,omitempty" firestore:"studentId,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`

	Premium          bool       `json:"premium" firestore:"premium"`
	PremiumGrantedAt *time.Time `json:"premium_granted_at,omitempty" firestore:"premiumGrantedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
