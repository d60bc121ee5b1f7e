package live

import "fmt"

// NotificationsTopic is the per-recipient notification stream
func NotificationsTopic(userID uint) Topic {
	return Topic(fmt.Sprintf("notifications:%d", userID))
}

// ChatTopic is the message stream of one chat
func ChatTopic(chatID string) Topic {
	return Topic("chat:" + chatID)
}
