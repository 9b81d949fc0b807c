package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/witter/internal/client/session"
)

func activeSession(handle string) *session.Session {
	return &session.Session{
		Identity: session.Identity{Handle: handle, Username: "someusername"},
		Token:    "signed.token.value",
	}
}

func TestCheckAccess_NoSession_RedirectsHome(t *testing.T) {
	d := CheckAccess(nil)
	assert.False(t, d.Allow)
	assert.Equal(t, TargetHome, d.Redirect)
}

func TestCheckAccess_ActiveSession_Allows(t *testing.T) {
	d := CheckAccess(activeSession("somehandle"))
	assert.True(t, d.Allow)
	assert.Empty(t, d.Redirect)
}

func TestOwnership_CheckBeforeResolve_ErrNotLoaded(t *testing.T) {
	o := NewOwnership()

	_, err := o.Check(activeSession("somehandle"))
	require.ErrorIs(t, err, ErrNotLoaded)
	assert.False(t, o.Loaded())
}

func TestOwnership_OwnerMatch_Allows(t *testing.T) {
	o := NewOwnership()
	o.Resolve("somehandle")

	d, err := o.Check(activeSession("somehandle"))
	require.NoError(t, err)
	assert.True(t, d.Allow)
}

func TestOwnership_OwnerMismatch_RedirectsHome(t *testing.T) {
	o := NewOwnership()
	o.Resolve("otherhandle")

	d, err := o.Check(activeSession("somehandle"))
	require.NoError(t, err)
	assert.False(t, d.Allow)
	assert.Equal(t, TargetHome, d.Redirect)
}

func TestOwnership_NoSession_RedirectsHome(t *testing.T) {
	o := NewOwnership()
	o.Resolve("somehandle")

	d, err := o.Check(nil)
	require.NoError(t, err)
	assert.False(t, d.Allow)
	assert.Equal(t, TargetHome, d.Redirect)
}
