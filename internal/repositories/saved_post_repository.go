package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/recipebook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	// ToggleSave flips recipeID in the user's record, creating the record on
	// first use, and returns the record after the flip.
	ToggleSave(ctx context.Context, userID uint, recipeID string) (*models.SavedPosts, error)
	GetSavedPosts(ctx context.Context, userID uint) (*models.SavedPosts, error)
	RemoveEverywhere(ctx context.Context, recipeID string) error
}

// MongoSavedPostRepository implements SavedPostRepository for MongoDB
type MongoSavedPostRepository struct {
	collection *mongo.Collection
}

func NewMongoSavedPostRepository(db *mongo.Database) *MongoSavedPostRepository {
	return &MongoSavedPostRepository{collection: db.Collection("user_saved_posts")}
}

func (r *MongoSavedPostRepository) ToggleSave(ctx context.Context, userID uint, recipeID string) (*models.SavedPosts, error) {
	ids := bson.D{{Key: "$ifNull", Value: bson.A{"$saved_post_ids", bson.A{}}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "saved_post_ids", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{recipeID, ids}}},
				bson.D{{Key: "$setDifference", Value: bson.A{ids, bson.A{recipeID}}}},
				bson.D{{Key: "$concatArrays", Value: bson.A{ids, bson.A{recipeID}}}},
			}}}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.SavedPosts
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": int64(userID)}, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetSavedPosts returns the user's record, or an empty one if none exists yet
func (r *MongoSavedPostRepository) GetSavedPosts(ctx context.Context, userID uint) (*models.SavedPosts, error) {
	var saved models.SavedPosts
	err := r.collection.FindOne(ctx, bson.M{"_id": int64(userID)}).Decode(&saved)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.SavedPosts{UserID: userID, SavedPostIDs: []string{}}, nil
		}
		return nil, err
	}
	return &saved, nil
}

// RemoveEverywhere drops a deleted recipe from every user's bookmarks
func (r *MongoSavedPostRepository) RemoveEverywhere(ctx context.Context, recipeID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"saved_post_ids": recipeID},
		bson.M{"$pull": bson.M{"saved_post_ids": recipeID}},
	)
	return err
}
