// Package api implements the JSON-over-HTTP client for the Witter backend.
// The backend owns all business rules; this package only shapes requests,
// attaches the bearer token, and maps failures onto the client error
// taxonomy (see errors.go).
package api

import (
	"context"

	"github.com/dmitrijs2005/witter/internal/client/models"
)

// Registration is the payload for account creation.
type Registration struct {
	Handle   string `json:"handle"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// ProfileUpdate is the payload for profile editing. OldPassword is always
// required by the backend; the remaining fields are applied as submitted.
type ProfileUpdate struct {
	Username        string `json:"username"`
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword,omitempty"`
	Email           string `json:"email"`
	UserDescription string `json:"userDescription,omitempty"`
	ProfilePicture  string `json:"profilePicture,omitempty"`
	BannerPicture   string `json:"bannerPicture,omitempty"`
}

// ProfileUpdateResult is the response to a profile edit. Token is non-empty
// when the backend reissued the credential (e.g. after a password change).
type ProfileUpdateResult struct {
	Account models.Account
	Token   string
}

// FieldErrors maps form field names to the backend's validation messages.
type FieldErrors map[string][]string

// Client defines the operations the Witter backend exposes to this client.
type Client interface {
	// Account.
	SignUp(ctx context.Context, reg Registration) (string, error)
	LogIn(ctx context.Context, handle, password string) (string, error)

	// Profile.
	GetProfile(ctx context.Context, handle string) (*models.Account, error)
	ValidateProfileEdit(ctx context.Context, handle string, upd ProfileUpdate) (FieldErrors, error)
	EditProfile(ctx context.Context, handle string, upd ProfileUpdate) (*ProfileUpdateResult, error)
	DeleteAccount(ctx context.Context, handle string) error

	// Weets.
	GetFeed(ctx context.Context) ([]models.Weet, error)
	GetWeet(ctx context.Context, id string) (*models.Weet, error)
	CreateWeet(ctx context.Context, content string) (*models.Weet, error)
	EditWeet(ctx context.Context, id, content string) (*models.Weet, error)
	DeleteWeet(ctx context.Context, id string) error

	// Profile listings.
	GetWeets(ctx context.Context, handle string) ([]models.Weet, error)
	GetReweets(ctx context.Context, handle string) ([]models.Weet, error)
	GetFavorites(ctx context.Context, handle string) ([]models.Weet, error)
	GetTabs(ctx context.Context, handle string) ([]models.Weet, error)
	GetFollowers(ctx context.Context, handle string) ([]models.Account, error)
	GetFollowing(ctx context.Context, handle string) ([]models.Account, error)

	// Social graph and content relationships.
	Follow(ctx context.Context, handle string) error
	Unfollow(ctx context.Context, handle string) error
	Reweet(ctx context.Context, id string) error
	Unreweet(ctx context.Context, id string) error
	Favorite(ctx context.Context, id string) error
	Unfavorite(ctx context.Context, id string) error
	Tab(ctx context.Context, id string) error
	Untab(ctx context.Context, id string) error

	// Search.
	SearchUsers(ctx context.Context, query string) ([]models.Account, error)
}
