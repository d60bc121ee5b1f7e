// Package push delivers notification pushes to a user's device through
// Firebase Cloud Messaging.
package push

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// Sender sends one push message to a device token
type Sender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FCMSender implements Sender with the Firebase messaging client
type FCMSender struct {
	client *messaging.Client
}

func NewFCMSender(client *messaging.Client) *FCMSender {
	return &FCMSender{client: client}
}

func (s *FCMSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	_, err := s.client.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}

// Noop discards pushes; used when messaging is not configured
type Noop struct{}

func (Noop) Send(context.Context, string, string, string, map[string]string) error { return nil }
