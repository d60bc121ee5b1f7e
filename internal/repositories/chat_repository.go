package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/recipebook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatRepository defines the interface for chat and message operations
type ChatRepository interface {
	FindOrCreateChat(ctx context.Context, a, b uint) (*models.Chat, error)
	GetChatByID(ctx context.Context, id string) (*models.Chat, error)
	GetChatsByUserID(ctx context.Context, userID uint) ([]models.Chat, error)
	AddMessage(ctx context.Context, msg *models.Message) error
	GetMessages(ctx context.Context, chatID string, limit int64) ([]models.Message, error)
}

type chatRepository struct {
	chats    *mongo.Collection
	messages *mongo.Collection
}

func NewMongoChatRepository(db *mongo.Database) ChatRepository {
	return &chatRepository{
		chats:    db.Collection("chats"),
		messages: db.Collection("messages"),
	}
}

// FindOrCreateChat returns the chat whose participants are exactly {a, b},
// inserting it if it does not exist yet.
func (r *chatRepository) FindOrCreateChat(ctx context.Context, a, b uint) (*models.Chat, error) {
	pair := []uint{a, b}
	if b < a {
		pair = []uint{b, a}
	}
	filter := bson.M{"participants": bson.A{int64(pair[0]), int64(pair[1])}}
	// the equality filter seeds participants on insert
	update := bson.M{"$setOnInsert": bson.M{
		"last_message":        "",
		"last_message_sender": 0,
		"last_updated":        time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var chat models.Chat
	if err := r.chats.FindOneAndUpdate(ctx, filter, update, opts).Decode(&chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) GetChatByID(ctx context.Context, id string) (*models.Chat, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var chat models.Chat
	if err := r.chats.FindOne(ctx, bson.M{"_id": objID}).Decode(&chat); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) GetChatsByUserID(ctx context.Context, userID uint) ([]models.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_updated", Value: -1}})
	cursor, err := r.chats.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	chats := []models.Chat{}
	if err = cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// AddMessage inserts the message and then updates the chat summary. The two
// writes are independent; a failed summary update leaves a stale preview only.
func (r *chatRepository) AddMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()
	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return err
	}
	_, err := r.chats.UpdateOne(ctx, bson.M{"_id": msg.ChatID}, bson.M{"$set": bson.M{
		"last_message":        msg.Text,
		"last_message_sender": msg.SenderID,
		"last_updated":        msg.CreatedAt,
	}})
	return err
}

// GetMessages returns the latest limit messages, oldest first
func (r *chatRepository) GetMessages(ctx context.Context, chatID string, limit int64) ([]models.Message, error) {
	objID, err := objectID(chatID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.messages.Find(ctx, bson.M{"chat_id": objID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	msgs := []models.Message{}
	if err = cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
