package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/amparo-app/amparo-cli/internal/client/api"
	"github.com/amparo-app/amparo-cli/internal/client/models"
	"github.com/amparo-app/amparo-cli/internal/client/session"
	"github.com/amparo-app/amparo-cli/internal/common"
)

// HealthService records and lists health measurements for the logged-in user.
type HealthService interface {
	Save(ctx context.Context, parameter, value string) (*models.HealthRecord, error)
	List(ctx context.Context) ([]models.HealthRecord, error)
}

type healthService struct {
	client api.Client
	store  *session.Store
}

func NewHealthService(client api.Client, store *session.Store) HealthService {
	return &healthService{client: client, store: store}
}

func (h *healthService) Save(ctx context.Context, parameter, value string) (*models.HealthRecord, error) {
	cur, ok := h.store.Current()
	if !ok {
		return nil, session.ErrNotLoggedIn
	}

	parameter = strings.TrimSpace(parameter)
	value = strings.TrimSpace(value)
	if parameter == "" {
		return nil, fmt.Errorf("%w: parameter is required", common.ErrorValidation)
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return nil, fmt.Errorf("%w: value must be numeric, got %q", common.ErrorValidation, value)
	}

	return h.client.SaveHealthRecord(ctx, models.HealthRecordCreate{
		UserID:    cur.Username,
		Parameter: parameter,
		Value:     value,
	})
}

func (h *healthService) List(ctx context.Context) ([]models.HealthRecord, error) {
	cur, ok := h.store.Current()
	if !ok {
		return nil, session.ErrNotLoggedIn
	}
	return h.client.ListHealthRecords(ctx, cur.Username)
}
