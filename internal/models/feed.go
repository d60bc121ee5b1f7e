package models

// FeedEntry is one ranked recipe of a viewer's home feed. Author is nil when
// the owning profile could not be resolved; AuthorName then falls back to the
// recipe's denormalized display name.
type FeedEntry struct {
	Recipe        Recipe       `json:"recipe"`
	Author        *UserCompact `json:"author,omitempty"`
	AuthorName    string       `json:"author_name"`
	IsLiked       bool         `json:"is_liked"`
	IsSaved       bool         `json:"is_saved"`
	IsFollowed    bool         `json:"is_followed"`
	LikesCount    int          `json:"likes_count"`
	CommentsCount int          `json:"comments_count"`
}

// LikeResult is returned by a like toggle
type LikeResult struct {
	RecipeID   string `json:"recipe_id"`
	Liked      bool   `json:"liked"`
	LikesCount int    `json:"likes_count"`
}

// SaveResult is returned by a save toggle
type SaveResult struct {
	RecipeID   string `json:"recipe_id"`
	Saved      bool   `json:"saved"`
	SavedCount int    `json:"saved_count"`
}
