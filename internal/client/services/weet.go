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
	"github.com/dmitrijs2005/witter/internal/common"
	"github.com/dmitrijs2005/witter/internal/logging"
)

// FieldWeet is the single content field of the weet forms.
const FieldWeet = "weet"

// WeetPage is a fetched weet together with its toggle states.
type WeetPage struct {
	Weet     *models.Weet
	Reweet   *toggle.Entity
	Favorite *toggle.Entity
	Tab      *toggle.Entity
}

// WeetService serves the feed, single weets, the weet forms and the
// reweet/favorite/tab toggles.
type WeetService struct {
	client   api.Client
	sessions *session.Store
	toggles  *toggle.Controller
	log      logging.Logger
}

func NewWeetService(client api.Client, sessions *session.Store, log logging.Logger) *WeetService {
	return &WeetService{
		client:   client,
		sessions: sessions,
		toggles:  toggle.NewController(&relationBackend{client: client}, log),
		log:      log,
	}
}

func (s *WeetService) Feed(ctx context.Context) ([]models.Weet, error) {
	return s.client.GetFeed(ctx)
}

// GetPage fetches one weet and prepares its toggles from the stats and
// checks the backend reported.
func (s *WeetService) GetPage(ctx context.Context, id string) (*WeetPage, error) {
	w, err := s.client.GetWeet(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get weet: %w", err)
	}
	return NewWeetPage(w), nil
}

// NewWeetPage builds the toggle entities for a weet already in hand, e.g.
// one item of a fetched feed.
func NewWeetPage(w *models.Weet) *WeetPage {
	return &WeetPage{
		Weet: w,
		Reweet: &toggle.Entity{
			SubjectID: w.ID, Relation: toggle.RelationReweet,
			Active: w.Checks.Reweeted, Count: w.Stats.Reweets,
		},
		Favorite: &toggle.Entity{
			SubjectID: w.ID, Relation: toggle.RelationFavorite,
			Active: w.Checks.Favorited, Count: w.Stats.Favorites,
		},
		Tab: &toggle.Entity{
			SubjectID: w.ID, Relation: toggle.RelationTab,
			Active: w.Checks.Tabbed, Count: w.Stats.Tabs,
		},
	}
}

// Toggle flips one of the page's entities.
func (s *WeetService) Toggle(ctx context.Context, e *toggle.Entity, action toggle.Action) error {
	return s.toggles.Toggle(ctx, e, action)
}

func (s *WeetService) Weets(ctx context.Context, handle string) ([]models.Weet, error) {
	return s.client.GetWeets(ctx, handle)
}

func (s *WeetService) Reweets(ctx context.Context, handle string) ([]models.Weet, error) {
	return s.client.GetReweets(ctx, handle)
}

func (s *WeetService) Favorites(ctx context.Context, handle string) ([]models.Weet, error) {
	return s.client.GetFavorites(ctx, handle)
}

func (s *WeetService) Tabs(ctx context.Context, handle string) ([]models.Weet, error) {
	return s.client.GetTabs(ctx, handle)
}

// CreateForm builds the new-weet form. Content rules run locally before the
// weet is posted.
func (s *WeetService) CreateForm() *forms.Form {
	return forms.New(forms.Config{
		Fields:     []string{FieldWeet},
		ErrorField: FieldWeet,
		Validate: func(ctx context.Context, values map[string]string) (forms.Result, error) {
			res := forms.NewResult(FieldWeet)
			res.Fail(FieldWeet, forms.CheckWeetContent(values[FieldWeet])...)
			return res, nil
		},
		Commit: func(ctx context.Context, values map[string]string) error {
			_, err := s.client.CreateWeet(ctx, values[FieldWeet])
			return err
		},
		Log: s.log,
	})
}

// EditForm fetches the weet named by id and checks its author against the
// session before handing out a form. Like the profile edit, the ownership
// decision waits for the fetch to complete.
func (s *WeetService) EditForm(ctx context.Context, id string) (*forms.Form, guard.Decision, error) {
	sess := s.sessions.Current()
	if d := guard.CheckAccess(sess); !d.Allow {
		return nil, d, nil
	}

	own := guard.NewOwnership()
	w, err := s.client.GetWeet(ctx, id)
	if err != nil {
		return nil, guard.Decision{}, fmt.Errorf("get weet: %w", err)
	}
	own.Resolve(w.Author)
	d, err := own.Check(sess)
	if err != nil {
		return nil, guard.Decision{}, err
	}
	if !d.Allow {
		return nil, d, nil
	}

	form := forms.New(forms.Config{
		Fields:     []string{FieldWeet},
		ErrorField: FieldWeet,
		Validate: func(ctx context.Context, values map[string]string) (forms.Result, error) {
			res := forms.NewResult(FieldWeet)
			res.Fail(FieldWeet, forms.CheckWeetContent(values[FieldWeet])...)
			return res, nil
		},
		Commit: func(ctx context.Context, values map[string]string) error {
			_, err := s.client.EditWeet(ctx, id, values[FieldWeet])
			return err
		},
		Log: s.log,
	})
	form.Set(FieldWeet, w.Weet)
	return form, guard.Decision{Allow: true}, nil
}

// Delete removes the caller's weet. The backend is the authority on
// ownership; this only rejects the obvious logged-out case.
func (s *WeetService) Delete(ctx context.Context, id string) error {
	if s.sessions.Current() == nil {
		return common.ErrNoSession
	}
	if err := s.client.DeleteWeet(ctx, id); err != nil {
		return fmt.Errorf("delete weet: %w", err)
	}
	return nil
}
