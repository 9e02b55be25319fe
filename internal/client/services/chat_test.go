package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amparo-app/amparo-cli/internal/client/models"
	"github.com/amparo-app/amparo-cli/internal/client/session"
	"github.com/amparo-app/amparo-cli/internal/common"
)

func newChatFixture(t *testing.T) (*fakeClient, ChatService) {
	t.Helper()
	client := &fakeClient{}
	store := setupSessionStore(t)
	require.NoError(t, store.Login(context.Background(), session.Session{Username: "maria", Age: 72, City: "Valencia", Token: "tok"}))
	return client, NewChatService(client, store)
}

func TestChatSend_RequiresLogin(t *testing.T) {
	svc := NewChatService(&fakeClient{}, setupSessionStore(t))

	_, err := svc.Send(context.Background(), "hola")
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
}

func TestChatSend_RejectsEmptyMessage(t *testing.T) {
	_, svc := newChatFixture(t)

	_, err := svc.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestChatSend_CarriesRollingHistory(t *testing.T) {
	client, svc := newChatFixture(t)
	ctx := context.Background()

	var seen []models.ChatInput
	client.chatFn = func(ctx context.Context, in models.ChatInput) (*models.ChatResponse, error) {
		seen = append(seen, in)
		return &models.ChatResponse{Reply: "respuesta a " + in.Message}, nil
	}

	_, err := svc.Send(ctx, "hola")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "¿qué día es?")
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "maria", seen[0].UserID)
	assert.Empty(t, seen[0].ConversationHistory)

	// The second call carries both sides of the first exchange.
	require.Len(t, seen[1].ConversationHistory, 2)
	assert.Equal(t, models.ConversationItem{Role: "user", Content: "hola"}, seen[1].ConversationHistory[0])
	assert.Equal(t, models.ConversationItem{Role: "assistant", Content: "respuesta a hola"}, seen[1].ConversationHistory[1])
}

func TestChatSend_HistoryIsCapped(t *testing.T) {
	client, svc := newChatFixture(t)
	ctx := context.Background()

	var last models.ChatInput
	client.chatFn = func(ctx context.Context, in models.ChatInput) (*models.ChatResponse, error) {
		last = in
		return &models.ChatResponse{Reply: "ok"}, nil
	}

	// Each exchange adds two items; well past the cap the window stays fixed.
	for i := 0; i < historyLimit+5; i++ {
		_, err := svc.Send(ctx, fmt.Sprintf("mensaje %d", i))
		require.NoError(t, err)
	}

	assert.Len(t, last.ConversationHistory, historyLimit)
	assert.Equal(t, "user", last.ConversationHistory[0].Role)
}

func TestChatSend_ErrorDoesNotPolluteHistory(t *testing.T) {
	client, svc := newChatFixture(t)
	ctx := context.Background()

	var last models.ChatInput
	client.chatFn = func(ctx context.Context, in models.ChatInput) (*models.ChatResponse, error) {
		last = in
		return nil, common.ErrorUnauthorized
	}

	_, err := svc.Send(ctx, "hola")
	require.Error(t, err)

	_, err = svc.Send(ctx, "hola otra vez")
	require.Error(t, err)
	assert.Empty(t, last.ConversationHistory)
}

func TestChatReset_DropsHistory(t *testing.T) {
	client, svc := newChatFixture(t)
	ctx := context.Background()

	var last models.ChatInput
	client.chatFn = func(ctx context.Context, in models.ChatInput) (*models.ChatResponse, error) {
		last = in
		return &models.ChatResponse{Reply: "ok"}, nil
	}

	_, err := svc.Send(ctx, "hola")
	require.NoError(t, err)

	svc.Reset()

	_, err = svc.Send(ctx, "de nuevo")
	require.NoError(t, err)
	assert.Empty(t, last.ConversationHistory)
}
