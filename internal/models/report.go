package models

import "time"

// Report types
const (
	ReportAccount = "account"
	ReportPost    = "post"
)

// Report statuses
const (
	ReportPending  = "pending"
	ReportFinished = "finished"
)

// AccountReportReasons lists the accepted reasons for reporting an account
var AccountReportReasons = []string{
	"Harassment or bullying",
	"Impersonation",
	"Inappropriate content",
	"Spam",
	"Fake account",
	"Other",
}

// PostReportReasons lists the accepted reasons for reporting a recipe
var PostReportReasons = []string{
	"Spam",
	"Inappropriate content",
	"Misleading recipe",
	"Copyright violation",
	"Other",
}

// Report is raised by a user against an account or a recipe and consumed by
// admin moderation.
type Report struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Type             string    `json:"type" gorm:"size:10;index"`
	ReporterID       uint      `json:"reporter_id" gorm:"index"`
	ReporterEmail    string    `json:"reporter_email"`
	ReportedUserID   uint      `json:"reported_user_id" gorm:"index"`
	ReportedUserName string    `json:"reported_user_name"`
	ReportedRecipeID string    `json:"reported_recipe_id,omitempty" gorm:"size:24;index"`
	Reason           string    `json:"reason"`
	Details          string    `json:"details"`
	Status           string    `json:"status" gorm:"size:10;default:'pending';index"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ReportAccountRequest defines the request body for reporting a user
type ReportAccountRequest struct {
	ReportedUserID uint   `json:"reported_user_id" validate:"required"`
	Reason         string `json:"reason" validate:"required"`
	Details        string `json:"details" validate:"max=1000"`
}

// ReportPostRequest defines the request body for reporting a recipe
type ReportPostRequest struct {
	RecipeID string `json:"recipe_id" validate:"required,len=24,hexadecimal"`
	Reason   string `json:"reason" validate:"required"`
	Details  string `json:"details" validate:"max=1000"`
}
