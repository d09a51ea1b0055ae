package message

import (
	"context"
	"fmt"
	"time"

	"github.com/lawlink-api/internal/domain"
	"github.com/lawlink-api/internal/pkg/validate"
)

type Service interface {
	Send(ctx context.Context, req domain.SendMessageRequest) (*domain.Message, error)
	Conversation(ctx context.Context, conversationID string) ([]domain.Message, error)
}

type messageStore interface {
	Insert(ctx context.Context, m *domain.Message) (string, error)
	ListByConversation(ctx context.Context, conversationID string) ([]domain.Message, error)
}

type service struct {
	repo messageStore
}

func NewService(repo messageStore) Service {
	return &service{repo: repo}
}

// Send stores the message under the symmetric conversation key, so either
// party's sender/receiver ordering lands in the same conversation.
func (s *service) Send(ctx context.Context, req domain.SendMessageRequest) (*domain.Message, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if req.SenderID == req.ReceiverID {
		return nil, fmt.Errorf("sender and receiver are the same account: %w", domain.ErrBadRequest)
	}
	m := &domain.Message{
		ConversationID: domain.ConversationID(req.SenderID, req.ReceiverID),
		SenderID:       req.SenderID,
		ReceiverID:     req.ReceiverID,
		Text:           req.Text,
		SentAt:         time.Now().UTC(),
	}
	if _, err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Conversation(ctx context.Context, conversationID string) ([]domain.Message, error) {
	msgs, err := s.repo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, domain.ErrNotFound)
	}
	return msgs, nil
}
