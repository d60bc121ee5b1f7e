package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/metrics"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/push"
	"github.com/anonto42/recipebook/backend/internal/repositories"
)

const anonymousName = "Anonymous"

// NotifyEvent describes an engagement on a recipe that its owner should hear about
type NotifyEvent struct {
	Type     string
	RecipeID string
	OwnerID  uint
	ActorID  uint
}

// Notifier appends notifications for recipe owners and fans them out to the
// live hub and to the owner's device.
type Notifier struct {
	users         repositories.UserRepository
	notifications repositories.NotificationRepository
	hub           *live.Hub
	pusher        push.Sender
	metrics       metrics.Recorder
	logger        *slog.Logger
	timeout       time.Duration
	now           func() time.Time
	wg            sync.WaitGroup
}

// NewNotifier creates a Notifier. pusher and rec may be nil.
func NewNotifier(
	users repositories.UserRepository,
	notifications repositories.NotificationRepository,
	hub *live.Hub,
	pusher push.Sender,
	rec metrics.Recorder,
	logger *slog.Logger,
) *Notifier {
	if pusher == nil {
		pusher = push.Noop{}
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		users:         users,
		notifications: notifications,
		hub:           hub,
		pusher:        pusher,
		metrics:       rec,
		logger:        logger,
		timeout:       5 * time.Second,
		now:           time.Now,
	}
}

// Emit appends one notification for ev. It returns nil, nil when the actor
// owns the recipe.
func (n *Notifier) Emit(ctx context.Context, ev NotifyEvent) (*models.Notification, error) {
	if ev.ActorID == ev.OwnerID {
		return nil, nil
	}
	if ev.Type != models.NotificationLike && ev.Type != models.NotificationComment {
		return nil, invalid("unknown notification type %q", ev.Type)
	}

	notification := &models.Notification{
		Type:        ev.Type,
		SenderID:    ev.ActorID,
		SenderName:  anonymousName,
		RecipientID: ev.OwnerID,
		RecipeID:    ev.RecipeID,
		CreatedAt:   n.now().UTC(),
	}
	if actor, err := n.users.GetUserByID(ctx, ev.ActorID); err == nil {
		if actor.Name != "" {
			notification.SenderName = actor.Name
		}
		notification.SenderAvatar = actor.AvatarURL
	}

	err := n.notifications.CreateNotification(ctx, notification)
	n.metrics.RecordNotification(ev.Type, err)
	if err != nil {
		return nil, fmt.Errorf("append notification: %w", err)
	}

	n.hub.Publish(live.Event{
		Topic:   live.NotificationsTopic(ev.OwnerID),
		Kind:    ev.Type,
		Payload: notification,
	})
	n.sendPush(ctx, notification)
	return notification, nil
}

func (n *Notifier) sendPush(ctx context.Context, notification *models.Notification) {
	owner, err := n.users.GetUserByID(ctx, notification.RecipientID)
	if err != nil || owner.DeviceToken == "" {
		return
	}

	body := notification.SenderName + " liked your recipe"
	if notification.Type == models.NotificationComment {
		body = notification.SenderName + " commented on your recipe"
	}
	data := map[string]string{
		"type":      notification.Type,
		"recipe_id": notification.RecipeID,
	}
	if err := n.pusher.Send(ctx, owner.DeviceToken, "Recipebook", body, data); err != nil {
		n.logger.Warn("push failed", "recipient_id", owner.ID, "error", err)
	}
}

// EmitAsync runs Emit in the background with its own deadline. Failures are
// logged and never reach the caller.
func (n *Notifier) EmitAsync(ev NotifyEvent) {
	if ev.ActorID == ev.OwnerID {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if _, err := n.Emit(ctx, ev); err != nil {
			n.logger.Error("notification dropped",
				"type", ev.Type,
				"recipe_id", ev.RecipeID,
				"recipient_id", ev.OwnerID,
				"error", err,
			)
		}
	}()
}

// Wait blocks until every EmitAsync call has finished
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// Page size bounds for paginated lists
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// NormalizePage clamps page to at least 1 and replaces a limit outside
// 1..MaxPageSize with DefaultPageSize.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return page, limit
}

// List returns a page of the recipient's notifications, newest first
func (n *Notifier) List(ctx context.Context, recipientID uint, page, limit int) ([]models.Notification, int64, error) {
	if err := requireViewer(recipientID); err != nil {
		return nil, 0, err
	}
	page, limit = NormalizePage(page, limit)
	items, total, err := n.notifications.GetByRecipientID(ctx, recipientID, page, limit)
	if err != nil {
		return nil, 0, storeErr("list notifications", err)
	}
	return items, total, nil
}

// Grouped buckets the recipient's notifications into today, yesterday, this
// week and older.
func (n *Notifier) Grouped(ctx context.Context, recipientID uint) (*models.GroupedNotifications, error) {
	if err := requireViewer(recipientID); err != nil {
		return nil, err
	}
	grouped, err := n.notifications.GetGrouped(ctx, recipientID, n.now())
	if err != nil {
		return nil, storeErr("group notifications", err)
	}
	return grouped, nil
}

// Stream delivers the recipient's new notifications until ctx ends
func (n *Notifier) Stream(ctx context.Context, recipientID uint) (<-chan live.Event, error) {
	if err := requireViewer(recipientID); err != nil {
		return nil, err
	}
	return n.hub.Subscribe(ctx, live.NotificationsTopic(recipientID)), nil
}
