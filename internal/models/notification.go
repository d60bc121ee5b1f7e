package models

import "time"

// Notification types
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification is an append-only record addressed to a recipe owner. Sender
// fields are a snapshot taken when the event happened.
type Notification struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Type         string    `json:"type" gorm:"size:20;index"`
	SenderID     uint      `json:"sender_id" gorm:"index"`
	SenderName   string    `json:"sender_name"`
	SenderAvatar string    `json:"sender_avatar,omitempty"`
	RecipientID  uint      `json:"recipient_id" gorm:"index"`
	RecipeID     string    `json:"recipe_id" gorm:"size:24"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}

// GroupedNotifications buckets a recipient's notifications by age
type GroupedNotifications struct {
	Today     []Notification `json:"today"`
	Yesterday []Notification `json:"yesterday"`
	ThisWeek  []Notification `json:"thisWeek"`
	Older     []Notification `json:"older"`
}

// FillEmpty replaces nil buckets with empty slices so every bucket encodes
// as a JSON array.
func (g *GroupedNotifications) FillEmpty() {
	for _, bucket := range []*[]Notification{&g.Today, &g.Yesterday, &g.ThisWeek, &g.Older} {
		if *bucket == nil {
			*bucket = []Notification{}
		}
	}
}
