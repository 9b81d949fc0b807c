package services

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/witter/internal/client/api"
	"github.com/dmitrijs2005/witter/internal/client/models"
	"github.com/dmitrijs2005/witter/internal/client/session"
	"github.com/dmitrijs2005/witter/internal/logging"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func makeToken(t *testing.T, handle, username string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"handle":   handle,
		"username": username,
		"email":    "a@b.com",
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// loggedInStore returns a session store with an active session for handle.
func loggedInStore(t *testing.T, client *fakeClient, handle string) *session.Store {
	t.Helper()
	client.LogInFn = func(ctx context.Context, h, p string) (string, error) {
		return makeToken(t, handle, "someusername"), nil
	}
	s := session.NewStore(client, setupDB(t), testLogger())
	_, err := s.LogIn(context.Background(), handle, "Abcdef1!")
	require.NoError(t, err)
	return s
}

// fakeClient implements api.Client. Unset function fields return zero
// values; toggle methods additionally record the ids they were called with.
type fakeClient struct {
	SignUpFn              func(ctx context.Context, reg api.Registration) (string, error)
	LogInFn               func(ctx context.Context, handle, password string) (string, error)
	GetProfileFn          func(ctx context.Context, handle string) (*models.Account, error)
	ValidateProfileEditFn func(ctx context.Context, handle string, upd api.ProfileUpdate) (api.FieldErrors, error)
	EditProfileFn         func(ctx context.Context, handle string, upd api.ProfileUpdate) (*api.ProfileUpdateResult, error)
	DeleteAccountFn       func(ctx context.Context, handle string) error
	GetFeedFn             func(ctx context.Context) ([]models.Weet, error)
	GetWeetFn             func(ctx context.Context, id string) (*models.Weet, error)
	CreateWeetFn          func(ctx context.Context, content string) (*models.Weet, error)
	EditWeetFn            func(ctx context.Context, id, content string) (*models.Weet, error)
	DeleteWeetFn          func(ctx context.Context, id string) error
	ToggleErr             error

	Calls []string
}

func (f *fakeClient) call(name, arg string) {
	f.Calls = append(f.Calls, name+" "+arg)
}

func (f *fakeClient) SignUp(ctx context.Context, reg api.Registration) (string, error) {
	if f.SignUpFn != nil {
		return f.SignUpFn(ctx, reg)
	}
	return "", nil
}

func (f *fakeClient) LogIn(ctx context.Context, handle, password string) (string, error) {
	if f.LogInFn != nil {
		return f.LogInFn(ctx, handle, password)
	}
	return "", nil
}

func (f *fakeClient) GetProfile(ctx context.Context, handle string) (*models.Account, error) {
	if f.GetProfileFn != nil {
		return f.GetProfileFn(ctx, handle)
	}
	return &models.Account{Handle: handle}, nil
}

func (f *fakeClient) ValidateProfileEdit(ctx context.Context, handle string, upd api.ProfileUpdate) (api.FieldErrors, error) {
	if f.ValidateProfileEditFn != nil {
		return f.ValidateProfileEditFn(ctx, handle, upd)
	}
	return nil, nil
}

func (f *fakeClient) EditProfile(ctx context.Context, handle string, upd api.ProfileUpdate) (*api.ProfileUpdateResult, error) {
	if f.EditProfileFn != nil {
		return f.EditProfileFn(ctx, handle, upd)
	}
	return &api.ProfileUpdateResult{}, nil
}

func (f *fakeClient) DeleteAccount(ctx context.Context, handle string) error {
	f.call("DeleteAccount", handle)
	if f.DeleteAccountFn != nil {
		return f.DeleteAccountFn(ctx, handle)
	}
	return nil
}

func (f *fakeClient) GetFeed(ctx context.Context) ([]models.Weet, error) {
	if f.GetFeedFn != nil {
		return f.GetFeedFn(ctx)
	}
	return nil, nil
}

func (f *fakeClient) GetWeet(ctx context.Context, id string) (*models.Weet, error) {
	if f.GetWeetFn != nil {
		return f.GetWeetFn(ctx, id)
	}
	return &models.Weet{ID: id}, nil
}

func (f *fakeClient) CreateWeet(ctx context.Context, content string) (*models.Weet, error) {
	f.call("CreateWeet", content)
	if f.CreateWeetFn != nil {
		return f.CreateWeetFn(ctx, content)
	}
	return &models.Weet{Weet: content}, nil
}

func (f *fakeClient) EditWeet(ctx context.Context, id, content string) (*models.Weet, error) {
	f.call("EditWeet", id)
	if f.EditWeetFn != nil {
		return f.EditWeetFn(ctx, id, content)
	}
	return &models.Weet{ID: id, Weet: content}, nil
}

func (f *fakeClient) DeleteWeet(ctx context.Context, id string) error {
	f.call("DeleteWeet", id)
	if f.DeleteWeetFn != nil {
		return f.DeleteWeetFn(ctx, id)
	}
	return nil
}

func (f *fakeClient) GetWeets(ctx context.Context, handle string) ([]models.Weet, error) {
	return nil, nil
}

func (f *fakeClient) GetReweets(ctx context.Context, handle string) ([]models.Weet, error) {
	return nil, nil
}

func (f *fakeClient) GetFavorites(ctx context.Context, handle string) ([]models.Weet, error) {
	return nil, nil
}

func (f *fakeClient) GetTabs(ctx context.Context, handle string) ([]models.Weet, error) {
	return nil, nil
}

func (f *fakeClient) GetFollowers(ctx context.Context, handle string) ([]models.Account, error) {
	return nil, nil
}

func (f *fakeClient) GetFollowing(ctx context.Context, handle string) ([]models.Account, error) {
	return nil, nil
}

func (f *fakeClient) Follow(ctx context.Context, handle string) error {
	f.call("Follow", handle)
	return f.ToggleErr
}

func (f *fakeClient) Unfollow(ctx context.Context, handle string) error {
	f.call("Unfollow", handle)
	return f.ToggleErr
}

func (f *fakeClient) Reweet(ctx context.Context, id string) error {
	f.call("Reweet", id)
	return f.ToggleErr
}

func (f *fakeClient) Unreweet(ctx context.Context, id string) error {
	f.call("Unreweet", id)
	return f.ToggleErr
}

func (f *fakeClient) Favorite(ctx context.Context, id string) error {
	f.call("Favorite", id)
	return f.ToggleErr
}

func (f *fakeClient) Unfavorite(ctx context.Context, id string) error {
	f.call("Unfavorite", id)
	return f.ToggleErr
}

func (f *fakeClient) Tab(ctx context.Context, id string) error {
	f.call("Tab", id)
	return f.ToggleErr
}

func (f *fakeClient) Untab(ctx context.Context, id string) error {
	f.call("Untab", id)
	return f.ToggleErr
}

func (f *fakeClient) SearchUsers(ctx context.Context, query string) ([]models.Account, error) {
	return nil, nil
}

var _ api.Client = (*fakeClient)(nil)
