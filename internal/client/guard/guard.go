// Package guard gates rendering of protected views. A view asks the guard
// for a decision before rendering; the decision is either Allow or a
// redirect target. Ownership checks depend on fetched resource data and are
// modeled as an explicit Loading → Loaded state machine, so they cannot be
// evaluated against stale or placeholder data.
package guard

import (
	"errors"

	"github.com/dmitrijs2005/witter/internal/client/session"
)

// Redirect targets.
const (
	TargetHome     = "/"
	TargetNotFound = "/not-found"
)

// ErrNotLoaded is returned when an ownership decision is requested before
// the owning resource has been fetched.
var ErrNotLoaded = errors.New("ownership not resolved yet")

// Decision is the guard's verdict for a view.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(target string) Decision { return Decision{Redirect: target} }

// CheckAccess admits a view when a session is active, and redirects home
// otherwise.
func CheckAccess(sess *session.Session) Decision {
	if sess == nil || sess.Token == "" {
		return redirect(TargetHome)
	}
	return allow()
}

// Ownership tracks the fetch state of a resource whose owner must match the
// authenticated identity (profile edit, weet edit). It starts in Loading;
// Resolve moves it to Loaded once the resource arrived.
type Ownership struct {
	loaded      bool
	ownerHandle string
}

func NewOwnership() *Ownership {
	return &Ownership{}
}

// Resolve records the owner handle of the fetched resource and unlocks
// decisions.
func (o *Ownership) Resolve(ownerHandle string) {
	o.ownerHandle = ownerHandle
	o.loaded = true
}

// Loaded reports whether the resource has been fetched.
func (o *Ownership) Loaded() bool {
	return o.loaded
}

// Check decides whether the session's identity owns the resource. Calling
// it before Resolve is a programming error and returns ErrNotLoaded rather
// than a decision based on placeholder data.
func (o *Ownership) Check(sess *session.Session) (Decision, error) {
	if !o.loaded {
		return Decision{}, ErrNotLoaded
	}
	if d := CheckAccess(sess); !d.Allow {
		return d, nil
	}
	if sess.Identity.Handle != o.ownerHandle {
		return redirect(TargetHome), nil
	}
	return allow(), nil
}
