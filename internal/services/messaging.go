package services

import (
	"context"
	"strings"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
)

// messageHistory is how many of the latest messages a chat view loads
const messageHistory = 50

// MessagingService runs one-to-one chats between users
type MessagingService struct {
	chats repositories.ChatRepository
	users repositories.UserRepository
	hub   *live.Hub
}

func NewMessagingService(chats repositories.ChatRepository, users repositories.UserRepository, hub *live.Hub) *MessagingService {
	return &MessagingService{chats: chats, users: users, hub: hub}
}

// OpenChat returns the chat between the viewer and otherID, creating it on
// first contact.
func (s *MessagingService) OpenChat(ctx context.Context, viewerID, otherID uint) (*models.ChatSummary, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	if viewerID == otherID {
		return nil, invalid("cannot chat with yourself")
	}
	other, err := s.users.GetUserByID(ctx, otherID)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	chat, err := s.chats.FindOrCreateChat(ctx, viewerID, otherID)
	if err != nil {
		return nil, storeErr("open chat", err)
	}
	return &models.ChatSummary{Chat: *chat, With: other.ToCompact()}, nil
}

// ListChats returns the viewer's chats, most recently active first
func (s *MessagingService) ListChats(ctx context.Context, viewerID uint) ([]models.ChatSummary, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	chats, err := s.chats.GetChatsByUserID(ctx, viewerID)
	if err != nil {
		return nil, storeErr("list chats", err)
	}

	ids := make([]uint, len(chats))
	for i := range chats {
		ids[i] = chats[i].Other(viewerID)
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr("get chat partners", err)
	}
	byID := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].ToCompact()
	}

	out := make([]models.ChatSummary, len(chats))
	for i := range chats {
		otherID := chats[i].Other(viewerID)
		with, ok := byID[otherID]
		if !ok {
			with = models.UserCompact{ID: otherID, Name: anonymousName}
		}
		out[i] = models.ChatSummary{Chat: chats[i], With: with}
	}
	return out, nil
}

func (s *MessagingService) participantChat(ctx context.Context, viewerID uint, chatID string) (*models.Chat, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	chat, err := s.chats.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, storeErr("get chat", err)
	}
	if !chat.HasParticipant(viewerID) {
		return nil, ErrForbidden
	}
	return chat, nil
}

// Messages returns the latest messages of a chat, oldest first
func (s *MessagingService) Messages(ctx context.Context, viewerID uint, chatID string) ([]models.Message, error) {
	if _, err := s.participantChat(ctx, viewerID, chatID); err != nil {
		return nil, err
	}
	messages, err := s.chats.GetMessages(ctx, chatID, messageHistory)
	if err != nil {
		return nil, storeErr("get messages", err)
	}
	return messages, nil
}

// Send appends a message, updates the chat summary and pushes the message
// to live listeners of the chat.
func (s *MessagingService) Send(ctx context.Context, viewerID uint, chatID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("message text is required")
	}
	chat, err := s.participantChat(ctx, viewerID, chatID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ChatID:   chat.ID,
		SenderID: viewerID,
		Text:     text,
	}
	if err := s.chats.AddMessage(ctx, msg); err != nil {
		return nil, storeErr("send message", err)
	}
	s.hub.Publish(live.Event{Topic: live.ChatTopic(chatID), Kind: "message", Payload: msg})
	return msg, nil
}

// Stream delivers new messages of a chat until ctx ends
func (s *MessagingService) Stream(ctx context.Context, viewerID uint, chatID string) (<-chan live.Event, error) {
	if _, err := s.participantChat(ctx, viewerID, chatID); err != nil {
		return nil, err
	}
	return s.hub.Subscribe(ctx, live.ChatTopic(chatID)), nil
}
