// Package session tracks the signed in identity and keeps it in a durable
// slot so it survives a restart. Passwords are accepted but never checked.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/videoshare/videoshare/internal/ids"
	"github.com/videoshare/videoshare/internal/model"
	"github.com/videoshare/videoshare/internal/storage"
)

// SlotKey is the slot the current identity is persisted under.
const SlotKey = "currentUser"

const DefaultLatency = time.Second

// Directory resolves login emails to identities.
type Directory interface {
	FindByEmail(email string) (model.Identity, bool)
}

type Config struct {
	Directory Directory
	Slot      storage.Slot
	// Latency is the simulated round trip before login and register resolve.
	Latency time.Duration
	Now     func() time.Time
}

type Store struct {
	mu      sync.RWMutex
	current *model.Identity

	directory Directory
	slot      storage.Slot
	latency   time.Duration
	now       func() time.Time
	ids       *ids.Generator
	inFlight  atomic.Int32
}

func New(cfg Config) *Store {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	slot := cfg.Slot
	if slot == nil {
		slot = storage.NewMemory()
	}
	return &Store{
		directory: cfg.Directory,
		slot:      slot,
		latency:   cfg.Latency,
		now:       now,
		ids:       ids.New(now),
	}
}

// Restore loads a previously persisted identity. A missing slot leaves the
// store signed out; an unreadable one is logged and ignored.
func (s *Store) Restore(ctx context.Context) error {
	data, err := s.slot.Load(ctx, SlotKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil || identity.ID == "" {
		slog.Warn("session: ignoring unreadable persisted identity", "error", err)
		return nil
	}

	s.mu.Lock()
	s.current = &identity
	s.mu.Unlock()
	return nil
}

func (s *Store) Current() (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return model.Identity{}, false
	}
	return *s.current, true
}

// Loading reports whether a login or register call is still waiting.
func (s *Store) Loading() bool {
	return s.inFlight.Load() > 0
}

// Login signs in the directory identity with this exact email. It returns
// false without touching the current identity when the email is unknown.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	if err := s.wait(ctx); err != nil {
		return false, err
	}

	if s.directory == nil {
		return false, nil
	}
	identity, ok := s.directory.FindByEmail(email)
	if !ok {
		return false, nil
	}

	if err := s.signIn(ctx, identity); err != nil {
		return false, err
	}
	slog.Info("session: signed in", "user_id", identity.ID)
	return true, nil
}

// Register creates a new identity from profile and signs it in.
func (s *Store) Register(ctx context.Context, profile model.Profile) (bool, error) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	if err := s.wait(ctx); err != nil {
		return false, err
	}

	identity := model.Identity{
		ID:              s.ids.Next(),
		Username:        profile.Username,
		Email:           profile.Email,
		Avatar:          profile.Avatar,
		SubscriberCount: 0,
		CreatedAt:       s.now().UTC().Format(time.DateOnly),
	}

	if err := s.signIn(ctx, identity); err != nil {
		return false, err
	}
	slog.Info("session: registered", "user_id", identity.ID)
	return true, nil
}

// Logout signs out even when the persisted slot cannot be removed; that
// failure is still returned.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.slot.Remove(ctx, SlotKey); err != nil {
		return fmt.Errorf("remove persisted session: %w", err)
	}
	return nil
}

// signIn persists identity before making it current, so a failed write
// leaves the previous session in place.
func (s *Store) signIn(ctx context.Context, identity model.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.slot.Save(ctx, SlotKey, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = &identity
	s.mu.Unlock()
	return nil
}

func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
