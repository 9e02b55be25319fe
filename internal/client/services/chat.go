package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/amparo-app/amparo-cli/internal/client/api"
	"github.com/amparo-app/amparo-cli/internal/client/models"
	"github.com/amparo-app/amparo-cli/internal/client/session"
	"github.com/amparo-app/amparo-cli/internal/common"
)

// historyLimit caps the rolling conversation window sent to the backend.
const historyLimit = 20

// ChatService sends conversational messages and keeps a rolling in-memory
// history for the current session. Reset drops the history (e.g. on logout).
type ChatService interface {
	Send(ctx context.Context, message string) (*models.ChatResponse, error)
	Reset()
}

type chatService struct {
	client api.Client
	store  *session.Store

	mu      sync.Mutex
	history []models.ConversationItem
}

func NewChatService(client api.Client, store *session.Store) ChatService {
	return &chatService{client: client, store: store}
}

func (c *chatService) Send(ctx context.Context, message string) (*models.ChatResponse, error) {
	cur, ok := c.store.Current()
	if !ok {
		return nil, session.ErrNotLoggedIn
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", common.ErrorValidation)
	}

	c.mu.Lock()
	history := make([]models.ConversationItem, len(c.history))
	copy(history, c.history)
	c.mu.Unlock()

	res, err := c.client.Chat(ctx, models.ChatInput{
		Message:             message,
		UserID:              cur.Username,
		ConversationHistory: history,
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.history = append(c.history,
		models.ConversationItem{Role: "user", Content: message},
		models.ConversationItem{Role: "assistant", Content: res.Reply},
	)
	if len(c.history) > historyLimit {
		c.history = c.history[len(c.history)-historyLimit:]
	}
	c.mu.Unlock()

	return res, nil
}

func (c *chatService) Reset() {
	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()
}
