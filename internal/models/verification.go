package models

import "time"

// Verification request statuses
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// VerificationRequest asks an admin to grant UserTitle as a verified badge
type VerificationRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	DisplayName string    `json:"display_name"`
	FullName    string    `json:"full_name"`
	UserTitle   string    `json:"user_title"`
	IDFrontURL  string    `json:"id_front_url"`
	IDBackURL   string    `json:"id_back_url"`
	Status      string    `json:"status" gorm:"size:10;default:'pending';index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateVerificationRequest is the form part of a verification submission;
// the two ID images arrive as multipart files.
type CreateVerificationRequest struct {
	FullName  string `form:"full_name" validate:"required,min=2,max=100"`
	UserTitle string `form:"user_title" validate:"required,min=2,max=50"`
}
