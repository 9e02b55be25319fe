package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/amparo-app/amparo-cli/internal/client/models"
	"github.com/amparo-app/amparo-cli/internal/common"
)

// HTTPClient is the concrete Client over net/http.
type HTTPClient struct {
	baseURL string
	hc      *http.Client

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient validates baseURL and constructs a client whose requests
// time out after the given duration.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// SetToken installs (or, with "", removes) the bearer credential.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// detailBody is the backend's error envelope.
type detailBody struct {
	Detail string `json:"detail"`
}

// do performs one JSON round trip. A non-nil in is sent as the request body;
// a non-nil out receives the decoded response. When authed is true the
// current bearer token is attached.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.currentToken())
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.mapStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// mapStatus converts a non-2xx response into a sentinel-wrapped error
// carrying the backend's detail message when one was provided.
func (c *HTTPClient) mapStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail := resp.Status
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var db detailBody
	if json.Unmarshal(raw, &db) == nil && db.Detail != "" {
		detail = db.Detail
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, detail)
	default:
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, detail)
	}
}

// notFoundAsEmpty converts a not-found error on a list endpoint into "zero
// items"; every other error passes through.
func notFoundAsEmpty(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

func (c *HTTPClient) Login(ctx context.Context, username, pin string) (*LoginResult, error) {
	req := map[string]string{"username": username, "pin": pin}
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &res, false); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, pin string, age int, city string) error {
	req := map[string]any{"username": username, "pin": pin, "age": age, "city": city}
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil, false)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, username string, age int, city string) error {
	req := map[string]any{"age": age, "city": city}
	return c.do(ctx, http.MethodPut, "/auth/profile/"+url.PathEscape(username), req, nil, true)
}

func (c *HTTPClient) ListReminders(ctx context.Context) ([]models.Reminder, error) {
	var res []models.Reminder
	err := c.do(ctx, http.MethodGet, "/reminders/", nil, &res, true)
	if err := notFoundAsEmpty(err); err != nil {
		return nil, err
	}
	if res == nil {
		res = []models.Reminder{}
	}
	return res, nil
}

func (c *HTTPClient) CreateReminder(ctx context.Context, text, datetime string) (*models.Reminder, error) {
	req := map[string]string{"text": text, "datetime": datetime}
	var res models.Reminder
	if err := c.do(ctx, http.MethodPost, "/reminders/", req, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UpdateReminder(ctx context.Context, id, text, datetime string) (*models.Reminder, error) {
	req := map[string]string{"text": text, "datetime": datetime}
	var res models.Reminder
	if err := c.do(ctx, http.MethodPut, "/reminders/"+url.PathEscape(id), req, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteReminder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+url.PathEscape(id), nil, nil, true)
}

func (c *HTTPClient) SaveHealthRecord(ctx context.Context, rec models.HealthRecordCreate) (*models.HealthRecord, error) {
	var res models.HealthRecord
	if err := c.do(ctx, http.MethodPost, "/health/", rec, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListHealthRecords(ctx context.Context, userID string) ([]models.HealthRecord, error) {
	var res []models.HealthRecord
	err := c.do(ctx, http.MethodGet, "/health/"+url.PathEscape(userID), nil, &res, true)
	if err := notFoundAsEmpty(err); err != nil {
		return nil, err
	}
	if res == nil {
		res = []models.HealthRecord{}
	}
	return res, nil
}

func (c *HTTPClient) ReportEmergency(ctx context.Context, e models.EmergencyCreate) (*models.Emergency, error) {
	var res models.Emergency
	if err := c.do(ctx, http.MethodPost, "/emergency/", e, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListEmergencies(ctx context.Context, userID string) ([]models.Emergency, error) {
	var res []models.Emergency
	err := c.do(ctx, http.MethodGet, "/emergency/"+url.PathEscape(userID), nil, &res, true)
	if err := notFoundAsEmpty(err); err != nil {
		return nil, err
	}
	if res == nil {
		res = []models.Emergency{}
	}
	return res, nil
}

func (c *HTTPClient) Chat(ctx context.Context, in models.ChatInput) (*models.ChatResponse, error) {
	var res models.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/chat/", in, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}
