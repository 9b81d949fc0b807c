// Package session implements the single source of truth for "who is logged
// in". The store keeps the active session in memory and writes it through
// to the durable metadata store, so a restart does not force
// re-authentication. Views read the session through the store; they never
// mutate it directly.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/witter/internal/client/api"
	"github.com/dmitrijs2005/witter/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/witter/internal/dbx"
	"github.com/dmitrijs2005/witter/internal/logging"
)

// Durable storage keys. Exactly these two values survive a restart; both
// absent means logged out.
const (
	keyIdentity = "identity"
	keyToken    = "token"
)

// Identity is the display identity decoded from the credential token.
type Identity struct {
	Handle   string `json:"handle"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Session pairs an identity with its credential token. Identity and Token
// are always both set: the store never holds a partial session.
type Session struct {
	Identity Identity
	Token    string
}

// AuthAPI is the slice of the backend client the store needs to establish
// sessions.
type AuthAPI interface {
	SignUp(ctx context.Context, reg api.Registration) (string, error)
	LogIn(ctx context.Context, handle, password string) (string, error)
}

// Store owns the current session.
type Store struct {
	mu  sync.Mutex
	cur *Session

	auth AuthAPI
	db   *sql.DB
	log  logging.Logger
}

func NewStore(auth AuthAPI, db *sql.DB, log logging.Logger) *Store {
	return &Store{auth: auth, db: db, log: log}
}

// Token returns the current credential token, or "" when logged out.
// Implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.Token
}

// Current returns a copy of the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	cp := *s.cur
	return &cp
}

// LogIn authenticates against the backend and installs the resulting
// session. Fails with common.ErrAuth when credentials are rejected.
func (s *Store) LogIn(ctx context.Context, handle, password string) (*Session, error) {
	token, err := s.auth.LogIn(ctx, handle, password)
	if err != nil {
		return nil, err
	}
	return s.install(ctx, token)
}

// SignUp creates an account on the backend and installs the resulting
// session. Fails with api.ValidationError when registration data is
// rejected.
func (s *Store) SignUp(ctx context.Context, reg api.Registration) (*Session, error) {
	token, err := s.auth.SignUp(ctx, reg)
	if err != nil {
		return nil, err
	}
	return s.install(ctx, token)
}

// Adopt installs a reissued token (e.g. after a profile edit that changed
// identity fields) without re-authenticating.
func (s *Store) Adopt(ctx context.Context, token string) (*Session, error) {
	return s.install(ctx, token)
}

// install decodes the token, persists identity and token in one
// transaction, and only then updates the in-memory session. The durable
// write happening first keeps memory and storage consistent: a session a
// view can see is always one that survives a restart.
func (s *Store) install(ctx context.Context, token string) (*Session, error) {
	identity, err := DecodeIdentity(token)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return nil, fmt.Errorf("encode identity: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyIdentity, raw); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, []byte(token))
	})
	if err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.cur = &Session{Identity: identity, Token: token}
	cp := *s.cur
	s.mu.Unlock()

	s.log.Info(ctx, "session established", "handle", identity.Handle)
	return &cp, nil
}

// LogOut clears the in-memory session and removes the persisted copy. It
// never fails: a durable-store error is logged and the in-memory session
// is cleared regardless, which at worst forgets a session early.
func (s *Store) LogOut(ctx context.Context) {
	s.mu.Lock()
	s.cur = nil
	s.mu.Unlock()

	repo := metadata.NewSQLiteRepository(s.db)
	if err := repo.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear persisted session", "error", err)
	}
	s.log.Info(ctx, "logged out")
}

// Restore repopulates the in-memory session from durable storage. It is
// idempotent and a no-op when a session is already active. Returns the
// restored session, or nil when storage holds no complete session.
func (s *Store) Restore(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	if s.cur != nil {
		cp := *s.cur
		s.mu.Unlock()
		return &cp, nil
	}
	s.mu.Unlock()

	repo := metadata.NewSQLiteRepository(s.db)

	rawIdentity, err := repo.Get(ctx, keyIdentity)
	if err != nil {
		return nil, err
	}
	rawToken, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if rawIdentity == nil || rawToken == nil {
		return nil, nil
	}

	var identity Identity
	if err := json.Unmarshal(rawIdentity, &identity); err != nil {
		return nil, fmt.Errorf("decode persisted identity: %w", err)
	}

	s.mu.Lock()
	s.cur = &Session{Identity: identity, Token: string(rawToken)}
	cp := *s.cur
	s.mu.Unlock()

	s.log.Info(ctx, "session restored", "handle", identity.Handle)
	return &cp, nil
}
