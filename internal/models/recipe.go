package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty levels accepted for a recipe
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Categories is the fixed list of recipe categories
var Categories = []string{
	"Main Dish",
	"Side Dish",
	"Appetizers",
	"Breakfast",
	"Lunch",
	"Dinner",
	"Dessert",
}

// Recipe is a recipe document stored in MongoDB. Likes is a set of user IDs
// and Comments is embedded in the document.
type Recipe struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       uint               `json:"user_id" bson:"user_id"`
	DisplayName  string             `json:"display_name" bson:"display_name"` // author name at post time
	RecipeName   string             `json:"recipe_name" bson:"recipe_name"`
	Ingredients  []string           `json:"ingredients" bson:"ingredients"`
	Instructions []string           `json:"instructions" bson:"instructions"`
	Difficulty   string             `json:"difficulty" bson:"difficulty"`
	PrepTime     string             `json:"prep_time" bson:"prep_time"`
	Serving      string             `json:"serving,omitempty" bson:"serving,omitempty"`
	Category     string             `json:"category" bson:"category"`
	ImageURL     string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Likes        []uint             `json:"likes" bson:"likes"`
	Comments     []Comment          `json:"comments" bson:"comments"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// LikedBy reports whether userID is in the recipe's likes set
func (r *Recipe) LikedBy(userID uint) bool {
	for _, id := range r.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// FindComment returns the embedded comment with the given id
func (r *Recipe) FindComment(commentID string) (*Comment, bool) {
	for i := range r.Comments {
		if r.Comments[i].ID == commentID {
			return &r.Comments[i], true
		}
	}
	return nil, false
}

// CreateRecipeRequest defines the request body for posting a recipe.
// Image is either uploaded as multipart "image" or given as ImageURL.
type CreateRecipeRequest struct {
	RecipeName   string   `json:"recipe_name" form:"recipe_name" validate:"required,min=1,max=120"`
	Ingredients  []string `json:"ingredients" form:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" form:"instructions" validate:"required,min=1,dive,required"`
	Difficulty   string   `json:"difficulty" form:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	PrepTime     string   `json:"prep_time" form:"prep_time" validate:"required,max=50"`
	Serving      string   `json:"serving" form:"serving" validate:"omitempty,max=50"`
	Category     string   `json:"category" form:"category" validate:"required,category"`
	ImageURL     string   `json:"image_url" form:"image_url" validate:"omitempty,url"`
}

// UpdateRecipeRequest defines the request body for editing a recipe
type UpdateRecipeRequest struct {
	RecipeName   string   `json:"recipe_name,omitempty" form:"recipe_name" validate:"omitempty,min=1,max=120"`
	Ingredients  []string `json:"ingredients,omitempty" form:"ingredients" validate:"omitempty,dive,required"`
	Instructions []string `json:"instructions,omitempty" form:"instructions" validate:"omitempty,dive,required"`
	Difficulty   string   `json:"difficulty,omitempty" form:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	PrepTime     string   `json:"prep_time,omitempty" form:"prep_time" validate:"omitempty,max=50"`
	Serving      string   `json:"serving,omitempty" form:"serving" validate:"omitempty,max=50"`
	Category     string   `json:"category,omitempty" form:"category" validate:"omitempty,category"`
	ImageURL     string   `json:"image_url,omitempty" form:"image_url" validate:"omitempty,url"`
}
