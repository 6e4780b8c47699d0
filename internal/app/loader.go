package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/five82/rollcall/internal/directory"
	"github.com/five82/rollcall/internal/session"
	"github.com/five82/rollcall/internal/state"
	"github.com/five82/rollcall/internal/view"
)

const defaultLoadTimeout = 15 * time.Second

// ErrNoSession is returned by commands that need a logged-in user.
var ErrNoSession = errors.New("not logged in (run `rollcall login` first)")

// RequireSession returns the signed-in identity or ErrNoSession.
func (e *Env) RequireSession(ctx context.Context) (session.Identity, error) {
	ok, err := e.Sessions.HasSession(ctx)
	if err != nil {
		return session.Identity{}, err
	}
	if !ok {
		return session.Identity{}, ErrNoSession
	}
	id, _, err := e.Sessions.Current(ctx)
	if err != nil {
		log.Printf("read session identity failed: %v", err)
	}
	return id, nil
}

// Load fetches the collection once into store. The store records the error
// as well, matching what the users screen does.
func Load(ctx context.Context, store *state.Store, f directory.Fetcher) error {
	ctx, cancel := context.WithTimeout(ctx, defaultLoadTimeout)
	defer cancel()

	users, err := f.FetchUsers(ctx)
	store.Update(users, err)
	if err != nil {
		log.Printf("fetch users failed: %v", err)
		return fmt.Errorf("fetch users: %w", err)
	}
	log.Printf("fetched %d users", len(users))
	return nil
}

// LoadView fetches once and runs the pipeline with s. The page is clamped
// to the filtered result, and the state actually used is returned.
func LoadView(ctx context.Context, f directory.Fetcher, s view.State) (view.Result, view.State, error) {
	var store state.Store
	if err := Load(ctx, &store, f); err != nil {
		return view.Result{}, s, err
	}
	users := store.Snapshot().Users
	s = s.WithPage(s.Page, len(view.Filter(users, s.Search)))
	return view.Compute(users, s), s, nil
}
