package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jmhodges/clock"

	"github.com/amparo-app/amparo-cli/internal/client/api"
	"github.com/amparo-app/amparo-cli/internal/client/config"
	"github.com/amparo-app/amparo-cli/internal/client/notify"
	"github.com/amparo-app/amparo-cli/internal/client/repositories/bindings"
	"github.com/amparo-app/amparo-cli/internal/client/services"
	"github.com/amparo-app/amparo-cli/internal/client/session"
	"github.com/amparo-app/amparo-cli/internal/client/storage"
	"github.com/amparo-app/amparo-cli/internal/common"
	"github.com/amparo-app/amparo-cli/internal/logging"
)

// App wires the Amparo client together: local storage, REST client,
// application services, and the interactive loop.
type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	store    *session.Store
	notifier *notify.LocalNotifier

	auth      services.AuthService
	reminders services.ReminderService
	health    services.HealthService
	emergency services.EmergencyService
	chat      services.ChatService

	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	apiClient, err := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	clk := clock.New()

	store := session.NewStore(db, clk, log)
	store.Load(ctx)
	if cur, ok := store.Current(); ok {
		apiClient.SetToken(cur.Token)
	}

	notifier := notify.NewLocalNotifier(clk, log)
	bindingsRepo := bindings.NewSQLiteRepository(db)

	return &App{
		config:    c,
		log:       log,
		db:        db,
		store:     store,
		notifier:  notifier,
		auth:      services.NewAuthService(apiClient, store),
		reminders: services.NewReminderService(apiClient, bindingsRepo, notifier, clk, log),
		health:    services.NewHealthService(apiClient, store),
		emergency: services.NewEmergencyService(apiClient, store),
		chat:      services.NewChatService(apiClient, store),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the notification loop and the REPL, blocking until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	go a.notifier.Run(ctx, a.config.NotifierTick)

	printlnFn("Bienvenido a Amparo (type 'help' for commands)")

	// A restored session re-arms its local notifications right away.
	if a.isLoggedIn() {
		if _, err := a.reminders.Refresh(ctx); err != nil {
			a.reportErr(ctx, err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.log.Warn(ctx, "failed to close api client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(ctx, "failed to close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.store.Current()
	return ok
}

func (a *App) getStatus() string {
	cur, ok := a.store.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s)", cur.Username)
}

// reportErr translates service errors into user-facing messages. A 401 on any
// authenticated call clears the session so the next prompt asks to log in.
func (a *App) reportErr(ctx context.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		cleared, herr := a.auth.HandleUnauthorized(ctx)
		if herr != nil {
			a.log.Error(ctx, "failed to clear rejected session", "error", herr)
		}
		if cleared {
			a.chat.Reset()
		}
		printlnFn("Your session has expired. Please log in again.")
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Could not reach the server. Please try again later.")
	case errors.Is(err, session.ErrNotLoggedIn):
		printlnFn("Please log in first.")
	case errors.Is(err, common.ErrorValidation):
		printlnFn("Invalid input:", err.Error())
	default:
		printlnFn("Error:", err.Error())
	}
}
