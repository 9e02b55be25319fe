package services

import (
	"context"
	"strings"

	"github.com/amparo-app/amparo-cli/internal/client/api"
	"github.com/amparo-app/amparo-cli/internal/client/models"
	"github.com/amparo-app/amparo-cli/internal/client/session"
)

// DefaultEmergencyType is used when the user triggers an alert without
// classifying it.
const DefaultEmergencyType = "Solicitud de emergencia"

// EmergencyService raises and lists emergency events for the logged-in user.
type EmergencyService interface {
	Report(ctx context.Context, emergencyType, message string) (*models.Emergency, error)
	List(ctx context.Context) ([]models.Emergency, error)
}

type emergencyService struct {
	client api.Client
	store  *session.Store
}

func NewEmergencyService(client api.Client, store *session.Store) EmergencyService {
	return &emergencyService{client: client, store: store}
}

func (e *emergencyService) Report(ctx context.Context, emergencyType, message string) (*models.Emergency, error) {
	cur, ok := e.store.Current()
	if !ok {
		return nil, session.ErrNotLoggedIn
	}

	emergencyType = strings.TrimSpace(emergencyType)
	if emergencyType == "" {
		emergencyType = DefaultEmergencyType
	}

	return e.client.ReportEmergency(ctx, models.EmergencyCreate{
		UserID:  cur.Username,
		Type:    emergencyType,
		Message: strings.TrimSpace(message),
	})
}

func (e *emergencyService) List(ctx context.Context) ([]models.Emergency, error) {
	cur, ok := e.store.Current()
	if !ok {
		return nil, session.ErrNotLoggedIn
	}
	return e.client.ListEmergencies(ctx, cur.Username)
}
