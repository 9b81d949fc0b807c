// Package toggle implements the reversible social actions (follow, reweet,
// favorite, tab) as one mechanism: flip local state immediately, confirm
// with the backend, and roll the local state back if confirmation fails.
package toggle

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/witter/internal/logging"
)

// Relation identifies which reversible relationship a toggle manipulates.
type Relation string

const (
	RelationFollow   Relation = "follow"
	RelationReweet   Relation = "reweet"
	RelationFavorite Relation = "favorite"
	RelationTab      Relation = "tab"
)

// Countable reports whether the relation carries an aggregate count.
// Follow relationships do not: follower totals live on the profile record.
func (r Relation) Countable() bool {
	return r != RelationFollow
}

// Action is the requested transition.
type Action int

const (
	Activate Action = iota
	Deactivate
)

var (
	ErrAlreadyActive   = errors.New("relation already active")
	ErrAlreadyInactive = errors.New("relation already inactive")
	ErrToggleInFlight  = errors.New("toggle already in flight for this subject")
)

// Entity is the local, view-owned state of one (subject, relation) pair.
// Count is meaningful only for countable relations.
type Entity struct {
	SubjectID string
	Relation  Relation
	Active    bool
	Count     int
}

// Backend issues the confirming request for a toggle.
type Backend interface {
	Activate(ctx context.Context, rel Relation, subjectID string) error
	Deactivate(ctx context.Context, rel Relation, subjectID string) error
}

type flightKey struct {
	subjectID string
	relation  Relation
}

// Controller serializes toggles per (subject, relation) pair and owns the
// optimistic-update-then-confirm sequence.
type Controller struct {
	backend Backend
	log     logging.Logger

	mu       sync.Mutex
	inflight map[flightKey]struct{}
}

func NewController(backend Backend, log logging.Logger) *Controller {
	return &Controller{
		backend:  backend,
		log:      log,
		inflight: make(map[flightKey]struct{}),
	}
}

// Toggle applies action to e: the local flip happens before the confirming
// request is issued, and is reverted if the request fails or ctx is
// canceled (the owning view went away; its state must not keep a
// half-confirmed delta).
//
// Toggling to the state the entity is already in returns ErrAlreadyActive
// or ErrAlreadyInactive without touching the entity. A second toggle for
// the same (subject, relation) while one is in flight returns
// ErrToggleInFlight.
func (c *Controller) Toggle(ctx context.Context, e *Entity, action Action) error {
	target := action == Activate
	if e.Active == target {
		if target {
			return ErrAlreadyActive
		}
		return ErrAlreadyInactive
	}

	key := flightKey{subjectID: e.SubjectID, relation: e.Relation}
	c.mu.Lock()
	if _, busy := c.inflight[key]; busy {
		c.mu.Unlock()
		return ErrToggleInFlight
	}
	c.inflight[key] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}()

	prevActive, prevCount := e.Active, e.Count

	e.Active = target
	if e.Relation.Countable() {
		if target {
			e.Count++
		} else if e.Count > 0 {
			e.Count--
		}
	}

	var err error
	if target {
		err = c.backend.Activate(ctx, e.Relation, e.SubjectID)
	} else {
		err = c.backend.Deactivate(ctx, e.Relation, e.SubjectID)
	}
	if err == nil {
		err = ctx.Err()
	}

	if err != nil {
		e.Active, e.Count = prevActive, prevCount
		c.log.Warn(ctx, "toggle rolled back",
			"subject", e.SubjectID, "relation", e.Relation, "error", err)
		return err
	}

	c.log.Debug(ctx, "toggle confirmed",
		"subject", e.SubjectID, "relation", e.Relation, "active", e.Active)
	return nil
}
