package models

import "time"

// Comment is embedded in Recipe.Comments. ID is assigned by the server and is
// the only key used to address a comment for edit or delete.
type Comment struct {
	ID          string    `json:"id" bson:"id"`
	AuthorID    uint      `json:"author_id" bson:"author_id"`
	AuthorEmail string    `json:"author_email" bson:"author_email"`
	Text        string    `json:"text" bson:"text"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// CommentView is a comment enriched with its author's current profile
type CommentView struct {
	Comment
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar,omitempty"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
