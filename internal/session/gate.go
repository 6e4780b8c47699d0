package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Key is the store key whose presence marks a logged-in user.
const Key = "user"

// KV is the persisted key/value capability the gate needs.
// storage.KV implements it.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Identity is the payload stored with the session flag.
type Identity struct {
	Email string `json:"email"`
}

// Gate reads and writes the persisted session flag.
type Gate struct {
	kv KV
}

// NewGate builds a Gate over kv.
func NewGate(kv KV) *Gate {
	return &Gate{kv: kv}
}

// HasSession reports whether a session flag exists.
func (g *Gate) HasSession(ctx context.Context) (bool, error) {
	if g == nil || g.kv == nil {
		return false, fmt.Errorf("session store is nil")
	}
	_, ok, err := g.kv.Get(ctx, Key)
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	return ok, nil
}

// Create persists the session flag for id. Creating the same session twice
// leaves the store unchanged.
func (g *Gate) Create(ctx context.Context, id Identity) error {
	if g == nil || g.kv == nil {
		return fmt.Errorf("session store is nil")
	}
	id.Email = strings.TrimSpace(id.Email)
	payload, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := g.kv.Set(ctx, Key, string(payload)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Current returns the stored identity, if any.
func (g *Gate) Current(ctx context.Context) (Identity, bool, error) {
	if g == nil || g.kv == nil {
		return Identity{}, false, fmt.Errorf("session store is nil")
	}
	raw, ok, err := g.kv.Get(ctx, Key)
	if err != nil {
		return Identity{}, false, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return Identity{}, false, nil
	}
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return Identity{}, true, fmt.Errorf("decode session: %w", err)
	}
	return id, true, nil
}
