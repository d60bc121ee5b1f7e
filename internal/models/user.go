package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role values for User.Role
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Status values for User.Status
const (
	StatusActive = "active"
	StatusBanned = "banned"
)

// User is a profile in the directory. ID is the immutable join key used by
// recipes, follows and notifications; Name is a mutable display name.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"index"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	Bio            string    `json:"bio"`
	AvatarURL      string    `json:"avatar_url"`
	Location       string    `json:"location"`
	UserTitle      *string   `json:"user_title,omitempty"`
	Role           string    `json:"role" gorm:"size:10;default:'user'"`
	Status         string    `json:"status" gorm:"size:10;default:'active';index"`
	Password       string    `json:"-"`
	FirebaseUID    *string   `json:"-" gorm:"uniqueIndex"`
	DeviceToken    string    `json:"-"`
	FollowersCount int       `json:"followers_count" gorm:"not null;default:0"`
	FollowingCount int       `json:"following_count" gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsBanned reports whether the account has been banned by moderation
func (u *User) IsBanned() bool {
	return u.Status == StatusBanned
}

// UserCompact is the author/actor summary embedded in feed entries, comments and chats
type UserCompact struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	AvatarURL string  `json:"avatar_url"`
	UserTitle *string `json:"user_title,omitempty"`
}

// ToCompact returns the public summary of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		UserTitle: u.UserTitle,
	}
}

// UserProfile is a user together with the viewer's relationship to them
type UserProfile struct {
	User
	IsFollowing bool `json:"is_following"`
	CanChat     bool `json:"can_chat"`
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name        string  `json:"name,omitempty" form:"name" validate:"omitempty,min=2,max=50"`
	Bio         *string `json:"bio,omitempty" form:"bio" validate:"omitempty,max=300"`
	Location    *string `json:"location,omitempty" form:"location" validate:"omitempty,max=100"`
	DeviceToken *string `json:"device_token,omitempty" form:"device_token"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
