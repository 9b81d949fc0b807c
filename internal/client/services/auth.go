// Package services contains the application services for the Witter client:
// account lifecycle, profile pages, and weet pages. Services own the
// orchestration between the API client, the session store, the guard, the
// toggle controller and form instances; views (the CLI) only call services.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/witter/internal/client/api"
	"github.com/dmitrijs2005/witter/internal/client/forms"
	"github.com/dmitrijs2005/witter/internal/client/session"
	"github.com/dmitrijs2005/witter/internal/common"
	"github.com/dmitrijs2005/witter/internal/logging"
)

// Form field names shared by the auth forms.
const (
	FieldHandle   = "handle"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldEmail    = "email"
)

// AuthService manages the account lifecycle: sign-up, log-in, log-out,
// session restore and account deletion.
type AuthService struct {
	client   api.Client
	sessions *session.Store
	log      logging.Logger
}

func NewAuthService(client api.Client, sessions *session.Store, log logging.Logger) *AuthService {
	return &AuthService{client: client, sessions: sessions, log: log}
}

// Current returns the active session, or nil when logged out.
func (s *AuthService) Current() *session.Session {
	return s.sessions.Current()
}

// Restore repopulates the session from durable storage on startup.
func (s *AuthService) Restore(ctx context.Context) (*session.Session, error) {
	return s.sessions.Restore(ctx)
}

// LogOut destroys the active session. Never fails.
func (s *AuthService) LogOut(ctx context.Context) {
	s.sessions.LogOut(ctx)
}

// SignUpForm builds the registration form. Field rules are mirrored
// client-side for immediate feedback; uniqueness is enforced by the backend
// at commit and surfaces as per-field messages.
func (s *AuthService) SignUpForm() *forms.Form {
	fields := []string{FieldHandle, FieldUsername, FieldPassword, FieldEmail}
	return forms.New(forms.Config{
		Fields:     fields,
		ErrorField: FieldPassword,
		Validate: func(ctx context.Context, values map[string]string) (forms.Result, error) {
			res := forms.NewResult(fields...)
			res.Fail(FieldHandle, forms.CheckHandle(values[FieldHandle])...)
			res.Fail(FieldUsername, forms.CheckUsername(values[FieldUsername])...)
			res.Fail(FieldPassword, forms.CheckPassword(values[FieldPassword])...)
			res.Fail(FieldEmail, forms.CheckEmail(values[FieldEmail])...)
			return res, nil
		},
		Commit: func(ctx context.Context, values map[string]string) error {
			_, err := s.sessions.SignUp(ctx, api.Registration{
				Handle:   values[FieldHandle],
				Username: values[FieldUsername],
				Password: values[FieldPassword],
				Email:    values[FieldEmail],
			})
			return err
		},
		Log: s.log,
	})
}

// LogInForm builds the log-in form. Credentials are checked by the backend
// only; a rejection attaches to the password field.
func (s *AuthService) LogInForm() *forms.Form {
	fields := []string{FieldHandle, FieldPassword}
	return forms.New(forms.Config{
		Fields:     fields,
		ErrorField: FieldPassword,
		Validate:   forms.PassValidation(fields...),
		Commit: func(ctx context.Context, values map[string]string) error {
			_, err := s.sessions.LogIn(ctx, values[FieldHandle], values[FieldPassword])
			return err
		},
		Log: s.log,
	})
}

// DeleteAccount deletes the authenticated account on the backend and then
// destroys the local session, so a subsequent Restore yields nothing.
func (s *AuthService) DeleteAccount(ctx context.Context) error {
	cur := s.sessions.Current()
	if cur == nil {
		return common.ErrNoSession
	}
	if err := s.client.DeleteAccount(ctx, cur.Identity.Handle); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.sessions.LogOut(ctx)
	return nil
}
