package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat is a one-to-one conversation summary stored in MongoDB
type Chat struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Participants      []uint             `json:"participants" bson:"participants"`
	LastMessage       string             `json:"last_message" bson:"last_message"`
	LastMessageSender uint               `json:"last_message_sender" bson:"last_message_sender"`
	LastUpdated       time.Time          `json:"last_updated" bson:"last_updated"`
}

// HasParticipant reports whether userID belongs to the chat
func (c *Chat) HasParticipant(userID uint) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Other returns the participant that is not userID
func (c *Chat) Other(userID uint) uint {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return userID
}

// Message is a single chat message stored in MongoDB
type Message struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ChatID    primitive.ObjectID `json:"chat_id" bson:"chat_id"`
	SenderID  uint               `json:"sender_id" bson:"sender_id"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// ChatSummary is a chat listed for one participant with the other's profile
type ChatSummary struct {
	Chat
	With UserCompact `json:"with"`
}

// OpenChatRequest defines the request body for finding or creating a chat
type OpenChatRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
