package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/recipebook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error)
	GetRecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error)
	GetRecipesByUserID(ctx context.Context, userID uint) ([]models.Recipe, error)
	GetAllRecipes(ctx context.Context) ([]models.Recipe, error)
	GetLikedRecipeIDs(ctx context.Context, userID uint) ([]string, error)
	UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string, userID uint) (*models.Recipe, error)
	AddComment(ctx context.Context, id string, comment models.Comment) error
	UpdateComment(ctx context.Context, id, commentID, authorEmail, text string) error
	DeleteComment(ctx context.Context, id, commentID string) error
}

// MongoRecipeRepository implements RecipeRepository for MongoDB
type MongoRecipeRepository struct {
	collection *mongo.Collection
}

// NewMongoRecipeRepository creates a new MongoRecipeRepository
func NewMongoRecipeRepository(db *mongo.Database) *MongoRecipeRepository {
	return &MongoRecipeRepository{collection: db.Collection("recipes")}
}

func objectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid ID %q: %w", id, ErrNotFound)
	}
	return objID, nil
}

// CreateRecipe inserts a new recipe with empty likes and comments
func (r *MongoRecipeRepository) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	now := time.Now().UTC()
	recipe.ID = primitive.NewObjectID()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	if recipe.Likes == nil {
		recipe.Likes = []uint{}
	}
	if recipe.Comments == nil {
		recipe.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, recipe)
	return err
}

// GetRecipeByID retrieves a recipe by ID from MongoDB
func (r *MongoRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var recipe models.Recipe
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetRecipesByIDs retrieves the listed recipes; IDs that no longer exist are skipped
func (r *MongoRecipeRepository) GetRecipesByIDs(ctx context.Context, ids []string) ([]models.Recipe, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}
	if len(objIDs) == 0 {
		return []models.Recipe{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objIDs}}, newestFirst())
}

// GetRecipesByUserID retrieves recipes posted by a specific user
func (r *MongoRecipeRepository) GetRecipesByUserID(ctx context.Context, userID uint) ([]models.Recipe, error) {
	return r.find(ctx, bson.M{"user_id": userID}, newestFirst())
}

// GetAllRecipes retrieves the whole collection; the feed ranks it in memory
func (r *MongoRecipeRepository) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	return r.find(ctx, bson.D{}, newestFirst())
}

// GetLikedRecipeIDs returns the IDs of recipes whose likes contain userID
func (r *MongoRecipeRepository) GetLikedRecipeIDs(ctx context.Context, userID uint) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"likes": userID}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID.Hex()
	}
	return ids, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

func (r *MongoRecipeRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe updates the editable fields of an existing recipe
func (r *MongoRecipeRepository) UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}

	recipe.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"recipe_name":  recipe.RecipeName,
			"ingredients":  recipe.Ingredients,
			"instructions": recipe.Instructions,
			"difficulty":   recipe.Difficulty,
			"prep_time":    recipe.PrepTime,
			"serving":      recipe.Serving,
			"category":     recipe.Category,
			"image_url":    recipe.ImageURL,
			"updated_at":   recipe.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecipe deletes a recipe by ID from MongoDB
func (r *MongoRecipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike flips userID's membership in the likes set with one atomic
// pipeline update and returns the document as it is after the flip.
func (r *MongoRecipeRepository) ToggleLike(ctx context.Context, id string, userID uint) (*models.Recipe, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}

	likes := bson.D{{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}}}
	uid := int64(userID)
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "likes", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{uid, likes}}},
				bson.D{{Key: "$setDifference", Value: bson.A{likes, bson.A{uid}}}},
				bson.D{{Key: "$concatArrays", Value: bson.A{likes, bson.A{uid}}}},
			}}}},
			{Key: "updated_at", Value: "$$NOW"},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var recipe models.Recipe
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// AddComment appends a comment to the embedded list
func (r *MongoRecipeRepository) AddComment(ctx context.Context, id string, comment models.Comment) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateComment rewrites the text of one comment, matched by ID and author email
func (r *MongoRecipeRepository) UpdateComment(ctx context.Context, id, commentID, authorEmail, text string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}
	filter := bson.M{
		"_id":      objID,
		"comments": bson.M{"$elemMatch": bson.M{"id": commentID, "author_email": authorEmail}},
	}
	update := bson.M{"$set": bson.M{
		"comments.$.text":       text,
		"comments.$.updated_at": time.Now().UTC(),
	}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteComment removes one comment by ID
func (r *MongoRecipeRepository) DeleteComment(ctx context.Context, id, commentID string) error {
	objID, err := objectID(id)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": objID, "comments.id": commentID}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{"comments": bson.M{"id": commentID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
