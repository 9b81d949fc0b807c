package forms

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/witter/internal/client/api"
	"github.com/dmitrijs2005/witter/internal/common"
	"github.com/dmitrijs2005/witter/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

// weetForm builds the weet-create form shape: one content field validated
// client-side.
func weetForm(commit CommitFunc) *Form {
	return New(Config{
		Fields:     []string{"weet"},
		ErrorField: "weet",
		Validate: func(ctx context.Context, values map[string]string) (Result, error) {
			res := NewResult("weet")
			res.Fail("weet", CheckWeetContent(values["weet"])...)
			return res, nil
		},
		Commit: commit,
		Log:    testLogger(),
	})
}

func countingCommit(n *int) CommitFunc {
	return func(ctx context.Context, values map[string]string) error {
		*n++
		return nil
	}
}

func TestSubmit_ValidWeet_Commits(t *testing.T) {
	commits := 0
	f := weetForm(countingCommit(&commits))
	f.Set("weet", "hello")

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, 1, commits)
	assert.Equal(t, PhaseIdle, f.Phase())
	assert.Empty(t, f.Value("weet"))
	assert.True(t, f.Result().Valid())
}

func TestSubmit_InvalidWeet_NeverReachesCommit(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"too long":   strings.Repeat("a", 251),
		"all spaces": "   ",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			commits := 0
			f := weetForm(countingCommit(&commits))
			f.Set("weet", content)

			err := f.Submit(context.Background())
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, 0, commits)
			assert.Equal(t, PhaseIdle, f.Phase())

			fr := f.Result()["weet"]
			assert.False(t, fr.IsValid)
			assert.Len(t, fr.Messages, 1)
		})
	}
}

func TestSubmit_CommitGate_RunsIffAllFieldsValid(t *testing.T) {
	commits := 0
	f := New(Config{
		Fields:     []string{"username", "email"},
		ErrorField: "username",
		Validate: func(ctx context.Context, values map[string]string) (Result, error) {
			res := NewResult("username", "email")
			res.Fail("email", MsgEmailFormat)
			return res, nil
		},
		Commit: countingCommit(&commits),
		Log:    testLogger(),
	})

	require.ErrorIs(t, f.Submit(context.Background()), common.ErrValidation)
	assert.Equal(t, 0, commits)
	assert.False(t, f.Result()["email"].IsValid)
	assert.True(t, f.Result()["username"].IsValid)
}

func TestSubmit_AuthFailure_AttachesToErrorField(t *testing.T) {
	f := New(Config{
		Fields:     []string{"handle", "password"},
		ErrorField: "password",
		Validate:   PassValidation("handle", "password"),
		Commit: func(ctx context.Context, values map[string]string) error {
			return common.ErrAuth
		},
		Log: testLogger(),
	})
	f.Set("handle", "somehandle")
	f.Set("password", "wrong")

	err := f.Submit(context.Background())
	require.ErrorIs(t, err, common.ErrAuth)
	assert.Equal(t, PhaseIdle, f.Phase())

	fr := f.Result()["password"]
	require.Len(t, fr.Messages, 1)
	assert.Equal(t, MsgAuthFailed, fr.Messages[0].Text)
	// Values are retained so the user can correct and resubmit.
	assert.Equal(t, "somehandle", f.Value("handle"))
}

func TestSubmit_BackendValidationError_MapsFields(t *testing.T) {
	f := New(Config{
		Fields:     []string{"handle", "username", "password", "email"},
		ErrorField: "password",
		Validate:   PassValidation("handle", "username", "password", "email"),
		Commit: func(ctx context.Context, values map[string]string) error {
			return &api.ValidationError{Fields: api.FieldErrors{
				"handle": {"Please select a different handle."},
				"":       {"Something else went wrong."},
			}}
		},
		Log: testLogger(),
	})

	err := f.Submit(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	assert.False(t, f.Result()["handle"].IsValid)
	// Unattributed messages land on the designated error field.
	assert.False(t, f.Result()["password"].IsValid)
}

func TestSubmit_NetworkFailureDuringCommit_GenericNotice(t *testing.T) {
	f := weetForm(func(ctx context.Context, values map[string]string) error {
		return common.ErrUnavailable
	})
	f.Set("weet", "hello")

	err := f.Submit(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.Equal(t, PhaseIdle, f.Phase())
	assert.Equal(t, MsgCommitFailed, f.Notice())
	// No field carries the failure.
	assert.True(t, f.Result().Valid())
}

func TestSubmit_ValidationOperationFails_GenericNotice(t *testing.T) {
	f := New(Config{
		Fields:     []string{"username"},
		ErrorField: "username",
		Validate: func(ctx context.Context, values map[string]string) (Result, error) {
			return nil, common.ErrUnavailable
		},
		Commit: func(ctx context.Context, values map[string]string) error { return nil },
		Log:    testLogger(),
	})

	require.ErrorIs(t, f.Submit(context.Background()), common.ErrUnavailable)
	assert.Equal(t, PhaseIdle, f.Phase())
	assert.Equal(t, MsgNetworkNotice, f.Notice())
}

func TestSubmit_SecondSubmitWhileCommitting_Ignored(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	commits := 0
	var mu sync.Mutex

	f := weetForm(func(ctx context.Context, values map[string]string) error {
		close(started)
		<-release
		mu.Lock()
		commits++
		mu.Unlock()
		return nil
	})
	f.Set("weet", "hello")

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-started

	require.ErrorIs(t, f.Submit(context.Background()), ErrSubmitInFlight)
	assert.Equal(t, PhaseCommitting, f.Phase())

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	assert.Equal(t, 1, commits)
	mu.Unlock()
}

func TestSet_IgnoredWhileSubmitting(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	f := weetForm(func(ctx context.Context, values map[string]string) error {
		close(started)
		<-release
		return errors.New("kept idle-bound values")
	})
	f.Set("weet", "hello")

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-started

	f.Set("weet", "late edit")
	close(release)
	<-done

	// The late edit was dropped; the submitted value survived the failure.
	assert.Equal(t, "hello", f.Value("weet"))
}

func TestDismiss_RemovesSingleMessageKeepsInvalid(t *testing.T) {
	f := weetForm(func(ctx context.Context, values map[string]string) error { return nil })
	f.Set("weet", " leading space")

	require.ErrorIs(t, f.Submit(context.Background()), common.ErrValidation)

	fr := f.Result()["weet"]
	require.Len(t, fr.Messages, 1)
	id := fr.Messages[0].ID

	f.Dismiss("weet", id)

	fr = f.Result()["weet"]
	assert.Empty(t, fr.Messages)
	// Dismissal hides the message; it does not make the field valid.
	assert.False(t, fr.IsValid)
}

func TestDismiss_UnknownIDsAndFields_NoOp(t *testing.T) {
	f := weetForm(func(ctx context.Context, values map[string]string) error { return nil })
	f.Dismiss("weet", "nope")
	f.Dismiss("missing", "nope")
	assert.True(t, f.Result().Valid())
}

func TestNewResult_CoversEveryField(t *testing.T) {
	r := NewResult("handle", "username", "password", "email")
	require.Len(t, r, 4)
	for _, field := range []string{"handle", "username", "password", "email"} {
		fr, ok := r[field]
		require.True(t, ok)
		assert.True(t, fr.IsValid)
		assert.Empty(t, fr.Messages)
	}
}

func TestSubmit_SequentialResubmitAfterFailure(t *testing.T) {
	commits := 0
	f := weetForm(countingCommit(&commits))

	f.Set("weet", "")
	require.Error(t, f.Submit(context.Background()))

	f.Set("weet", "hello")
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, 1, commits)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "validating", PhaseValidating.String())
	assert.Equal(t, "committing", PhaseCommitting.String())

	// Phases are strictly ordered: validating always precedes committing.
	var seen []Phase
	var mu sync.Mutex
	f := New(Config{
		Fields:     []string{"weet"},
		ErrorField: "weet",
		Validate: func(ctx context.Context, values map[string]string) (Result, error) {
			mu.Lock()
			seen = append(seen, PhaseValidating)
			mu.Unlock()
			time.Sleep(time.Millisecond)
			return NewResult("weet"), nil
		},
		Commit: func(ctx context.Context, values map[string]string) error {
			mu.Lock()
			seen = append(seen, PhaseCommitting)
			mu.Unlock()
			return nil
		},
		Log: testLogger(),
	})
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, []Phase{PhaseValidating, PhaseCommitting}, seen)
}
