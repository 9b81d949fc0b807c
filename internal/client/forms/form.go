// Package forms implements the validate-then-commit submission flow shared
// by the sign-up, log-in, profile-edit and weet forms. A form is always in
// one of three phases: Idle (editable), Validating (field values are being
// checked) or Committing (the mutating request is in flight). Validation
// must finish clean before the commit is issued, and a submit that arrives
// while another is in progress is ignored.
package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/witter/internal/client/api"
	"github.com/dmitrijs2005/witter/internal/common"
	"github.com/dmitrijs2005/witter/internal/logging"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseCommitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseCommitting:
		return "committing"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var ErrSubmitInFlight = errors.New("submit already in progress")

// Generic notices for failures that are not tied to a field value.
const (
	MsgAuthFailed    = "Invalid handle or password."
	MsgCommitFailed  = "Something went wrong. Please try again."
	MsgNetworkNotice = "Could not reach the server. Please try again."
)

// ValidateFunc checks the submitted values. It returns a Result covering
// the form's fields; for forms validated by the backend it issues the
// validation request.
type ValidateFunc func(ctx context.Context, values map[string]string) (Result, error)

// CommitFunc issues the mutating request once validation passed.
type CommitFunc func(ctx context.Context, values map[string]string) error

// Config assembles a form.
type Config struct {
	// Fields lists every known field; the result always covers all of them.
	Fields []string
	// ErrorField receives messages that arrive without field attribution
	// (auth failures, unattributed backend messages). Conventionally the
	// password field on auth forms and the content field on weet forms.
	ErrorField string
	Validate   ValidateFunc
	Commit     CommitFunc
	Log        logging.Logger
}

// Form is one form instance. It is owned by a single view; methods are
// safe to call from the view's event handlers and request callbacks.
type Form struct {
	cfg Config

	mu     sync.Mutex
	phase  Phase
	values map[string]string
	result Result
	notice string
}

func New(cfg Config) *Form {
	return &Form{
		cfg:    cfg,
		values: make(map[string]string, len(cfg.Fields)),
		result: NewResult(cfg.Fields...),
	}
}

// Set records a field value while the form is editable. Values submitted
// with a phase change in progress are dropped.
func (f *Form) Set(field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != PhaseIdle {
		return
	}
	f.values[field] = value
}

func (f *Form) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Result returns the currently displayed validation result.
func (f *Form) Result() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Notice returns the generic non-field notice, if any.
func (f *Form) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Dismiss removes one displayed message from the current result.
func (f *Form) Dismiss(field, messageID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result.Dismiss(field, messageID)
}

// Submit runs the two phases: validate, then commit iff every field
// validates. On success the form returns to Idle with cleared values. On
// a validation miss the per-field result is retained for display and
// common.ErrValidation is returned. A submit while Validating or
// Committing returns ErrSubmitInFlight and has no effect.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.phase != PhaseIdle {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.phase = PhaseValidating
	f.notice = ""
	values := make(map[string]string, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	f.mu.Unlock()

	res, err := f.cfg.Validate(ctx, values)
	if err != nil {
		// The validation operation itself failed (e.g. backend down).
		f.finish(PhaseIdle, nil, MsgNetworkNotice)
		return err
	}
	if !res.Valid() {
		f.finish(PhaseIdle, res, "")
		f.cfg.Log.Debug(ctx, "form validation failed")
		return common.ErrValidation
	}

	f.mu.Lock()
	f.phase = PhaseCommitting
	f.mu.Unlock()

	if err := f.cfg.Commit(ctx, values); err != nil {
		f.failCommit(ctx, err)
		return err
	}

	f.mu.Lock()
	f.phase = PhaseIdle
	f.values = make(map[string]string, len(f.cfg.Fields))
	f.result = NewResult(f.cfg.Fields...)
	f.mu.Unlock()
	return nil
}

// failCommit maps a commit failure onto the displayed result: field-level
// backend rejections land on their fields, auth failures on the designated
// error field, anything else becomes a generic notice. The form returns to
// Idle with values retained so the user can correct and resubmit.
func (f *Form) failCommit(ctx context.Context, err error) {
	res := NewResult(f.cfg.Fields...)
	notice := ""

	if ve, ok := api.AsValidationError(err); ok {
		for field, msgs := range ve.Fields {
			if field == "" {
				field = f.cfg.ErrorField
			}
			res.Fail(field, msgs...)
		}
	} else if errors.Is(err, common.ErrAuth) {
		res.Fail(f.cfg.ErrorField, MsgAuthFailed)
	} else {
		notice = MsgCommitFailed
	}

	f.finish(PhaseIdle, res, notice)
	f.cfg.Log.Warn(ctx, "form commit failed", "error", err)
}

func (f *Form) finish(phase Phase, res Result, notice string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = phase
	if res != nil {
		f.result = res
	}
	f.notice = notice
}

// PassValidation is a ValidateFunc for forms whose rules are enforced
// entirely at commit time by the backend (log-in, sign-up uniqueness).
func PassValidation(fields ...string) ValidateFunc {
	return func(ctx context.Context, values map[string]string) (Result, error) {
		return NewResult(fields...), nil
	}
}
