package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/amparo-app/amparo-cli/internal/client/api"
	"github.com/amparo-app/amparo-cli/internal/client/models"
	"github.com/amparo-app/amparo-cli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeClient is a hand-rolled api.Client whose behavior is set per test via
// function fields; unset methods succeed with zero values.
type fakeClient struct {
	token string

	loginFn         func(ctx context.Context, username, pin string) (*api.LoginResult, error)
	registerFn      func(ctx context.Context, username, pin string, age int, city string) error
	updateProfileFn func(ctx context.Context, username string, age int, city string) error

	listRemindersFn  func(ctx context.Context) ([]models.Reminder, error)
	createReminderFn func(ctx context.Context, text, datetime string) (*models.Reminder, error)
	updateReminderFn func(ctx context.Context, id, text, datetime string) (*models.Reminder, error)
	deleteReminderFn func(ctx context.Context, id string) error

	saveHealthFn  func(ctx context.Context, rec models.HealthRecordCreate) (*models.HealthRecord, error)
	listHealthFn  func(ctx context.Context, userID string) ([]models.HealthRecord, error)
	reportEmergFn func(ctx context.Context, e models.EmergencyCreate) (*models.Emergency, error)
	listEmergFn   func(ctx context.Context, userID string) ([]models.Emergency, error)
	chatFn        func(ctx context.Context, in models.ChatInput) (*models.ChatResponse, error)
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error          { return nil }
func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Login(ctx context.Context, username, pin string) (*api.LoginResult, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, username, pin)
	}
	return &api.LoginResult{Username: username}, nil
}

func (f *fakeClient) Register(ctx context.Context, username, pin string, age int, city string) error {
	if f.registerFn != nil {
		return f.registerFn(ctx, username, pin, age, city)
	}
	return nil
}

func (f *fakeClient) UpdateProfile(ctx context.Context, username string, age int, city string) error {
	if f.updateProfileFn != nil {
		return f.updateProfileFn(ctx, username, age, city)
	}
	return nil
}

func (f *fakeClient) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	if f.listRemindersFn != nil {
		return f.listRemindersFn(ctx)
	}
	return []models.Reminder{}, nil
}

func (f *fakeClient) CreateReminder(ctx context.Context, text, datetime string) (*models.Reminder, error) {
	if f.createReminderFn != nil {
		return f.createReminderFn(ctx, text, datetime)
	}
	return &models.Reminder{ID: "created", Text: text, Datetime: datetime}, nil
}

func (f *fakeClient) UpdateReminder(ctx context.Context, id, text, datetime string) (*models.Reminder, error) {
	if f.updateReminderFn != nil {
		return f.updateReminderFn(ctx, id, text, datetime)
	}
	return &models.Reminder{ID: id, Text: text, Datetime: datetime}, nil
}

func (f *fakeClient) DeleteReminder(ctx context.Context, id string) error {
	if f.deleteReminderFn != nil {
		return f.deleteReminderFn(ctx, id)
	}
	return nil
}

func (f *fakeClient) SaveHealthRecord(ctx context.Context, rec models.HealthRecordCreate) (*models.HealthRecord, error) {
	if f.saveHealthFn != nil {
		return f.saveHealthFn(ctx, rec)
	}
	return &models.HealthRecord{UserID: rec.UserID, Parameter: rec.Parameter, Value: rec.Value}, nil
}

func (f *fakeClient) ListHealthRecords(ctx context.Context, userID string) ([]models.HealthRecord, error) {
	if f.listHealthFn != nil {
		return f.listHealthFn(ctx, userID)
	}
	return []models.HealthRecord{}, nil
}

func (f *fakeClient) ReportEmergency(ctx context.Context, e models.EmergencyCreate) (*models.Emergency, error) {
	if f.reportEmergFn != nil {
		return f.reportEmergFn(ctx, e)
	}
	return &models.Emergency{UserID: e.UserID, Type: e.Type, Message: e.Message}, nil
}

func (f *fakeClient) ListEmergencies(ctx context.Context, userID string) ([]models.Emergency, error) {
	if f.listEmergFn != nil {
		return f.listEmergFn(ctx, userID)
	}
	return []models.Emergency{}, nil
}

func (f *fakeClient) Chat(ctx context.Context, in models.ChatInput) (*models.ChatResponse, error) {
	if f.chatFn != nil {
		return f.chatFn(ctx, in)
	}
	return &models.ChatResponse{Reply: "ok"}, nil
}

// fakeNotifier records live notifications by handle.
type fakeNotifier struct {
	mu        sync.Mutex
	seq       int
	live      map[string]string // handle -> text
	cancelled []string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{live: make(map[string]string)}
}

func (f *fakeNotifier) Schedule(ctx context.Context, text string, at time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("notif-%d", f.seq)
	f.live[id] = text
	return id, nil
}

func (f *fakeNotifier) Cancel(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, id)
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeNotifier) liveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}
