package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/witter/internal/client/models"
	"github.com/dmitrijs2005/witter/internal/common"
)

// TokenSource supplies the current bearer token. An empty string means no
// session; the request is sent unauthenticated and the backend decides.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a plain function to TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// HTTPClient is the concrete Client speaking JSON over HTTP(S).
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient constructs a client for the backend at baseURL. tokens may
// be nil when the client is only used for unauthenticated operations.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// errorEnvelope is the backend's error body: message is a string or an
// array of strings.
type errorEnvelope struct {
	Error struct {
		Message json.RawMessage `json:"message"`
	} `json:"error"`
}

// tokenResponse is the body of sign-up/log-in responses.
type tokenResponse struct {
	Token string `json:"token"`
}

// validateResponse mirrors the backend validation route's shape: one entry
// per field with a validity flag and messages.
type validateResponse map[string]struct {
	IsValid  bool     `json:"isValid"`
	Messages []string `json:"messages"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return c.mapError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// mapError converts an HTTP failure into the client error taxonomy.
// Messages from 400 responses are carried unattributed (empty field key);
// the form layer attaches them to its designated field.
func (c *HTTPClient) mapError(status int, body []byte) error {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &ValidationError{Fields: FieldErrors{"": envelopeMessages(body)}}
	case status == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case status == http.StatusForbidden:
		return common.ErrForbidden
	case status == http.StatusNotFound:
		return common.ErrNotFound
	case status >= 500:
		return fmt.Errorf("%w: status %d", common.ErrUnavailable, status)
	default:
		return fmt.Errorf("unexpected status %d: %s", status, envelopeMessages(body))
	}
}

// envelopeMessages extracts the message(s) from an error envelope. The
// backend sends either a single string or an array.
func envelopeMessages(body []byte) []string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Error.Message) == 0 {
		return nil
	}
	var many []string
	if err := json.Unmarshal(env.Error.Message, &many); err == nil {
		return many
	}
	var one string
	if err := json.Unmarshal(env.Error.Message, &one); err == nil {
		return []string{one}
	}
	return nil
}

func (c *HTTPClient) SignUp(ctx context.Context, reg Registration) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/account/sign-up", reg, &resp); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			return "", common.ErrAuth
		}
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) LogIn(ctx context.Context, handle, password string) (string, error) {
	body := map[string]string{"handle": handle, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/account/log-in", body, &resp); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			return "", common.ErrAuth
		}
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, handle string) (*models.Account, error) {
	var acc models.Account
	if err := c.do(ctx, http.MethodGet, "/profile/"+handle, nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *HTTPClient) ValidateProfileEdit(ctx context.Context, handle string, upd ProfileUpdate) (FieldErrors, error) {
	var resp validateResponse
	if err := c.do(ctx, http.MethodPost, "/profile/"+handle+"/validate", upd, &resp); err != nil {
		return nil, err
	}
	fields := make(FieldErrors)
	for field, r := range resp {
		if !r.IsValid {
			fields[field] = r.Messages
		}
	}
	return fields, nil
}

func (c *HTTPClient) EditProfile(ctx context.Context, handle string, upd ProfileUpdate) (*ProfileUpdateResult, error) {
	var resp struct {
		models.Account
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPut, "/profile/"+handle, upd, &resp); err != nil {
		return nil, err
	}
	return &ProfileUpdateResult{Account: resp.Account, Token: resp.Token}, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, handle string) error {
	return c.do(ctx, http.MethodDelete, "/profile/"+handle, nil, nil)
}

func (c *HTTPClient) GetFeed(ctx context.Context) ([]models.Weet, error) {
	var weets []models.Weet
	if err := c.do(ctx, http.MethodGet, "/weets", nil, &weets); err != nil {
		return nil, err
	}
	return weets, nil
}

func (c *HTTPClient) GetWeet(ctx context.Context, id string) (*models.Weet, error) {
	var w models.Weet
	if err := c.do(ctx, http.MethodGet, "/weets/"+id, nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) CreateWeet(ctx context.Context, content string) (*models.Weet, error) {
	var w models.Weet
	if err := c.do(ctx, http.MethodPost, "/weets", map[string]string{"weet": content}, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) EditWeet(ctx context.Context, id, content string) (*models.Weet, error) {
	var w models.Weet
	if err := c.do(ctx, http.MethodPut, "/weets/"+id, map[string]string{"weet": content}, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *HTTPClient) DeleteWeet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/weets/"+id, nil, nil)
}

func (c *HTTPClient) listWeets(ctx context.Context, path string) ([]models.Weet, error) {
	var weets []models.Weet
	if err := c.do(ctx, http.MethodGet, path, nil, &weets); err != nil {
		return nil, err
	}
	return weets, nil
}

func (c *HTTPClient) listAccounts(ctx context.Context, path string) ([]models.Account, error) {
	var accs []models.Account
	if err := c.do(ctx, http.MethodGet, path, nil, &accs); err != nil {
		return nil, err
	}
	return accs, nil
}

func (c *HTTPClient) GetWeets(ctx context.Context, handle string) ([]models.Weet, error) {
	return c.listWeets(ctx, "/profile/"+handle+"/weets")
}

func (c *HTTPClient) GetReweets(ctx context.Context, handle string) ([]models.Weet, error) {
	return c.listWeets(ctx, "/profile/"+handle+"/reweets")
}

func (c *HTTPClient) GetFavorites(ctx context.Context, handle string) ([]models.Weet, error) {
	return c.listWeets(ctx, "/profile/"+handle+"/favorites")
}

func (c *HTTPClient) GetTabs(ctx context.Context, handle string) ([]models.Weet, error) {
	return c.listWeets(ctx, "/profile/"+handle+"/tabs")
}

func (c *HTTPClient) GetFollowers(ctx context.Context, handle string) ([]models.Account, error) {
	return c.listAccounts(ctx, "/profile/"+handle+"/followers")
}

func (c *HTTPClient) GetFollowing(ctx context.Context, handle string) ([]models.Account, error) {
	return c.listAccounts(ctx, "/profile/"+handle+"/following")
}

func (c *HTTPClient) Follow(ctx context.Context, handle string) error {
	return c.do(ctx, http.MethodPost, "/users/"+handle+"/follow", nil, nil)
}

func (c *HTTPClient) Unfollow(ctx context.Context, handle string) error {
	return c.do(ctx, http.MethodPost, "/users/"+handle+"/unfollow", nil, nil)
}

func (c *HTTPClient) Reweet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/weets/"+id+"/reweet", nil, nil)
}

func (c *HTTPClient) Unreweet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/weets/"+id+"/unreweet", nil, nil)
}

func (c *HTTPClient) Favorite(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/weets/"+id+"/favorite", nil, nil)
}

func (c *HTTPClient) Unfavorite(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/weets/"+id+"/unfavorite", nil, nil)
}

func (c *HTTPClient) Tab(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/weets/"+id+"/tab", nil, nil)
}

func (c *HTTPClient) Untab(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/weets/"+id+"/untab", nil, nil)
}

func (c *HTTPClient) SearchUsers(ctx context.Context, query string) ([]models.Account, error) {
	return c.listAccounts(ctx, "/users/"+query)
}
