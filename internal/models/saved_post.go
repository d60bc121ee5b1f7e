package models

// SavedPosts is the per-user bookmark record, keyed by user ID and created on
// the first save.
type SavedPosts struct {
	UserID       uint     `json:"user_id" bson:"_id"`
	SavedPostIDs []string `json:"saved_post_ids" bson:"saved_post_ids"`
}

// Has reports whether recipeID is bookmarked
func (s *SavedPosts) Has(recipeID string) bool {
	for _, id := range s.SavedPostIDs {
		if id == recipeID {
			return true
		}
	}
	return false
}
