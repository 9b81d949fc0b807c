package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/witter/internal/client/api"
	"github.com/dmitrijs2005/witter/internal/client/clientdb"
	"github.com/dmitrijs2005/witter/internal/client/config"
	"github.com/dmitrijs2005/witter/internal/client/services"
	"github.com/dmitrijs2005/witter/internal/client/session"
	"github.com/dmitrijs2005/witter/internal/logging"
)

// App is the interactive client. It owns the service layer and the input
// reader; command handlers live in the sibling files.
type App struct {
	config   *config.Config
	sessions *session.Store
	auth     *services.AuthService
	profiles *services.ProfileService
	weets    *services.WeetService
	log      logging.Logger
	reader   *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := clientdb.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	// The API client and the session store reference each other: the client
	// asks the store for the bearer token, the store asks the client to log
	// in. The function indirection breaks the construction cycle.
	var sessions *session.Store
	apiClient := api.NewHTTPClient(c.BaseURL, c.RequestTimeout, api.TokenSourceFunc(func() string {
		if sessions == nil {
			return ""
		}
		return sessions.Token()
	}))
	sessions = session.NewStore(apiClient, db, log)

	return &App{
		config:   c,
		sessions: sessions,
		auth:     services.NewAuthService(apiClient, sessions, log),
		profiles: services.NewProfileService(apiClient, sessions, log),
		weets:    services.NewWeetService(apiClient, sessions, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.Current() != nil
}

func (a *App) getStatus() string {
	if cur := a.auth.Current(); cur != nil {
		return fmt.Sprintf("(@%s)", cur.Identity.Handle)
	}
	return ""
}

// Run restores the saved session, if any, and starts the REPL.
func (a *App) Run(ctx context.Context) {
	if sess, err := a.auth.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	} else if sess != nil {
		fmt.Printf("Welcome back, @%s!\n", sess.Identity.Handle)
	}
	a.Root(ctx)
}
