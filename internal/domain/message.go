package domain

import (
	"sort"
	"strings"
	"time"
)

// Message is one direct message inside a conversation.
// Stored under PK conversation_id, SK message_id (ULID, so range order is send order).
type Message struct {
	ConversationID string    `json:"conversation_id" dynamodbav:"conversation_id"`
	MessageID      string    `json:"id" dynamodbav:"message_id"`
	SenderID       string    `json:"sender_id" dynamodbav:"sender_id"`
	ReceiverID     string    `json:"receiver_id" dynamodbav:"receiver_id"`
	Text           string    `json:"message_text" dynamodbav:"message_text"`
	SentAt         time.Time `json:"sent_at" dynamodbav:"sent_at"`
}

type SendMessageRequest struct {
	SenderID   string `json:"sender_id" validate:"required"`
	ReceiverID string `json:"receiver_id" validate:"required"`
	Text       string `json:"message_text" validate:"required"`
}

// ConversationID derives the symmetric conversation key for a pair of accounts:
// the two IDs sorted and joined so both directions map to the same conversation.
func ConversationID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}
