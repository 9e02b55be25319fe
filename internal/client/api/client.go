package api

import (
	"context"

	"github.com/amparo-app/amparo-cli/internal/client/models"
)

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	Username    string `json:"username"`
	Age         int    `json:"age"`
	City        string `json:"city"`
	AccessToken string `json:"access_token"`
}

// Client is the surface the services use to talk to the backend.
//
// Contract:
//   - SetToken installs the bearer credential used by authenticated calls;
//     an empty token removes it.
//   - Any authenticated call may fail with common.ErrorUnauthorized (HTTP
//     401); the caller is responsible for clearing the session.
//   - List calls translate HTTP 404 into an empty slice, not an error.
//   - Connection-level failures are reported as ErrUnavailable.
//
// All methods honor context cancellation.
type Client interface {
	Close() error
	SetToken(token string)

	Login(ctx context.Context, username, pin string) (*LoginResult, error)
	Register(ctx context.Context, username, pin string, age int, city string) error
	UpdateProfile(ctx context.Context, username string, age int, city string) error

	ListReminders(ctx context.Context) ([]models.Reminder, error)
	CreateReminder(ctx context.Context, text, datetime string) (*models.Reminder, error)
	UpdateReminder(ctx context.Context, id, text, datetime string) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, id string) error

	SaveHealthRecord(ctx context.Context, rec models.HealthRecordCreate) (*models.HealthRecord, error)
	ListHealthRecords(ctx context.Context, userID string) ([]models.HealthRecord, error)

	ReportEmergency(ctx context.Context, e models.EmergencyCreate) (*models.Emergency, error)
	ListEmergencies(ctx context.Context, userID string) ([]models.Emergency, error)

	Chat(ctx context.Context, in models.ChatInput) (*models.ChatResponse, error)
}
