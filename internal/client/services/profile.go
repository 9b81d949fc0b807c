package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/witter/internal/client/api"
	"github.com/dmitrijs2005/witter/internal/client/forms"
	"github.com/dmitrijs2005/witter/internal/client/guard"
	"github.com/dmitrijs2005/witter/internal/client/models"
	"github.com/dmitrijs2005/witter/internal/client/session"
	"github.com/dmitrijs2005/witter/internal/client/toggle"
	"github.com/dmitrijs2005/witter/internal/logging"
)

// Profile edit form fields.
const (
	FieldOldPassword     = "oldPassword"
	FieldNewPassword     = "newPassword"
	FieldUserDescription = "userDescription"
	FieldProfilePicture  = "profilePicture"
	FieldBannerPicture   = "bannerPicture"
)

// ProfilePage is a fetched profile together with its follow toggle state.
type ProfilePage struct {
	Account *models.Account
	Follow  *toggle.Entity
}

// ProfileService serves profile pages: viewing, following, editing and the
// profile listings.
type ProfileService struct {
	client   api.Client
	sessions *session.Store
	toggles  *toggle.Controller
	log      logging.Logger
}

func NewProfileService(client api.Client, sessions *session.Store, log logging.Logger) *ProfileService {
	return &ProfileService{
		client:   client,
		sessions: sessions,
		toggles:  toggle.NewController(&relationBackend{client: client}, log),
		log:      log,
	}
}

// GetPage fetches a profile and prepares its follow toggle.
func (s *ProfileService) GetPage(ctx context.Context, handle string) (*ProfilePage, error) {
	acc, err := s.client.GetProfile(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &ProfilePage{
		Account: acc,
		Follow: &toggle.Entity{
			SubjectID: acc.Handle,
			Relation:  toggle.RelationFollow,
			Active:    acc.FollowStatus.IsFollower,
		},
	}, nil
}

// ToggleFollow flips the follow relationship on the page's entity.
func (s *ProfileService) ToggleFollow(ctx context.Context, e *toggle.Entity, action toggle.Action) error {
	return s.toggles.Toggle(ctx, e, action)
}

func (s *ProfileService) Followers(ctx context.Context, handle string) ([]models.Account, error) {
	return s.client.GetFollowers(ctx, handle)
}

func (s *ProfileService) Following(ctx context.Context, handle string) ([]models.Account, error) {
	return s.client.GetFollowing(ctx, handle)
}

func (s *ProfileService) Search(ctx context.Context, query string) ([]models.Account, error) {
	return s.client.SearchUsers(ctx, query)
}

// EditForm fetches the profile named by handle and, once the owner is known,
// checks it against the session. The ownership decision is made strictly
// after the fetch completes; a mismatch yields a redirect instead of a form.
func (s *ProfileService) EditForm(ctx context.Context, handle string) (*forms.Form, guard.Decision, error) {
	sess := s.sessions.Current()
	if d := guard.CheckAccess(sess); !d.Allow {
		return nil, d, nil
	}

	own := guard.NewOwnership()
	acc, err := s.client.GetProfile(ctx, handle)
	if err != nil {
		return nil, guard.Decision{}, fmt.Errorf("get profile: %w", err)
	}
	own.Resolve(acc.Handle)
	d, err := own.Check(sess)
	if err != nil {
		return nil, guard.Decision{}, err
	}
	if !d.Allow {
		return nil, d, nil
	}

	fields := []string{
		FieldUsername, FieldEmail, FieldOldPassword, FieldNewPassword,
		FieldUserDescription, FieldProfilePicture, FieldBannerPicture,
	}
	form := forms.New(forms.Config{
		Fields:     fields,
		ErrorField: FieldOldPassword,
		Validate: func(ctx context.Context, values map[string]string) (forms.Result, error) {
			res := forms.NewResult(fields...)
			res.Fail(FieldUsername, forms.CheckUsername(values[FieldUsername])...)
			res.Fail(FieldEmail, forms.CheckEmail(values[FieldEmail])...)
			if values[FieldNewPassword] != "" {
				res.Fail(FieldNewPassword, forms.CheckPassword(values[FieldNewPassword])...)
			}
			res.Fail(FieldUserDescription, forms.CheckDescription(values[FieldUserDescription])...)
			res.Fail(FieldProfilePicture, forms.CheckPictureURL(values[FieldProfilePicture])...)
			res.Fail(FieldBannerPicture, forms.CheckPictureURL(values[FieldBannerPicture])...)
			if !res.Valid() {
				return res, nil
			}
			fieldErrs, err := s.client.ValidateProfileEdit(ctx, acc.Handle, updateFromValues(values))
			if err != nil {
				return nil, err
			}
			for field, msgs := range fieldErrs {
				res.Fail(field, msgs...)
			}
			return res, nil
		},
		Commit: func(ctx context.Context, values map[string]string) error {
			result, err := s.client.EditProfile(ctx, acc.Handle, updateFromValues(values))
			if err != nil {
				return err
			}
			if result.Token != "" {
				if _, err := s.sessions.Adopt(ctx, result.Token); err != nil {
					return fmt.Errorf("adopt reissued token: %w", err)
				}
			}
			return nil
		},
		Log: s.log,
	})

	form.Set(FieldUsername, acc.Username)
	form.Set(FieldEmail, acc.Email)
	form.Set(FieldUserDescription, acc.UserDescription)
	form.Set(FieldProfilePicture, acc.ProfilePicture)
	form.Set(FieldBannerPicture, acc.BannerPicture)
	return form, guard.Decision{Allow: true}, nil
}

func updateFromValues(values map[string]string) api.ProfileUpdate {
	return api.ProfileUpdate{
		Username:        values[FieldUsername],
		OldPassword:     values[FieldOldPassword],
		NewPassword:     values[FieldNewPassword],
		Email:           values[FieldEmail],
		UserDescription: values[FieldUserDescription],
		ProfilePicture:  values[FieldProfilePicture],
		BannerPicture:   values[FieldBannerPicture],
	}
}
