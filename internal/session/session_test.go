package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/videoshare/videoshare/internal/model"
	"github.com/videoshare/videoshare/internal/storage"
)

var testNow = time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)

type mockDirectory map[string]model.Identity

func (d mockDirectory) FindByEmail(email string) (model.Identity, bool) {
	u, ok := d[email]
	return u, ok
}

type failingSlot struct {
	storage.Slot
	saveErr   error
	removeErr error
}

func (f *failingSlot) Save(ctx context.Context, key string, value []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Slot.Save(ctx, key, value)
}

func (f *failingSlot) Remove(ctx context.Context, key string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.Slot.Remove(ctx, key)
}

var alice = model.Identity{ID: "1", Username: "alice", Email: "alice@example.com", SubscriberCount: 12, CreatedAt: "2020-01-01"}

func newTestStore(slot storage.Slot) *Store {
	return New(Config{
		Directory: mockDirectory{alice.Email: alice},
		Slot:      slot,
		Now:       func() time.Time { return testNow },
	})
}

func persisted(t *testing.T, slot storage.Slot) (model.Identity, bool) {
	t.Helper()
	data, err := slot.Load(context.Background(), SlotKey)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Identity{}, false
	}
	if err != nil {
		t.Fatalf("load slot: %v", err)
	}
	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	return identity, true
}

func TestLoginKnownEmail(t *testing.T) {
	slot := storage.NewMemory()
	s := newTestStore(slot)

	ok, err := s.Login(context.Background(), alice.Email, "anything")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !ok {
		t.Fatal("expected login to succeed")
	}

	current, signedIn := s.Current()
	if !signedIn || current != alice {
		t.Errorf("expected current identity %+v, got %+v", alice, current)
	}

	stored, found := persisted(t, slot)
	if !found || stored != alice {
		t.Errorf("expected persisted identity %+v, got %+v", alice, stored)
	}
}

func TestLoginUnknownEmailWhenSignedOut(t *testing.T) {
	slot := storage.NewMemory()
	s := newTestStore(slot)

	ok, err := s.Login(context.Background(), "unknown@x.com", "x")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if ok {
		t.Fatal("expected login to fail")
	}
	if _, signedIn := s.Current(); signedIn {
		t.Error("expected to stay signed out")
	}
	if _, found := persisted(t, slot); found {
		t.Error("expected nothing persisted")
	}
}

func TestLoginUnknownEmailWhenSignedIn(t *testing.T) {
	s := newTestStore(storage.NewMemory())
	if _, err := s.Login(context.Background(), alice.Email, "pw"); err != nil {
		t.Fatal(err)
	}

	ok, _ := s.Login(context.Background(), "unknown@x.com", "x")
	if ok {
		t.Fatal("expected login to fail")
	}
	current, signedIn := s.Current()
	if !signedIn || current.ID != alice.ID {
		t.Errorf("expected alice to stay signed in, got %+v", current)
	}
}

func TestLoginIsCaseSensitive(t *testing.T) {
	s := newTestStore(storage.NewMemory())
	ok, _ := s.Login(context.Background(), "ALICE@example.com", "pw")
	if ok {
		t.Error("expected exact email match only")
	}
}

func TestLoginWithoutDirectory(t *testing.T) {
	s := New(Config{})
	ok, err := s.Login(context.Background(), alice.Email, "pw")
	if err != nil || ok {
		t.Errorf("expected (false, nil), got (%v, %v)", ok, err)
	}
}

func TestLoginPersistFailureKeepsPreviousIdentity(t *testing.T) {
	slot := &failingSlot{Slot: storage.NewMemory(), saveErr: errors.New("disk full")}
	s := newTestStore(slot)

	ok, err := s.Login(context.Background(), alice.Email, "pw")
	if err == nil || ok {
		t.Fatalf("expected (false, error), got (%v, %v)", ok, err)
	}
	if _, signedIn := s.Current(); signedIn {
		t.Error("expected to stay signed out after failed persist")
	}
}

func TestLoginCancelledDuringLatency(t *testing.T) {
	s := New(Config{
		Directory: mockDirectory{alice.Email: alice},
		Latency:   time.Hour,
	})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := s.Login(ctx, alice.Email, "pw")
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !s.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("expected login to be in flight")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("login did not resolve after cancel")
	}

	if s.Loading() {
		t.Error("expected loading to clear after resolve")
	}
	if _, signedIn := s.Current(); signedIn {
		t.Error("expected cancelled login to leave the store signed out")
	}
}

func TestLoginWaitsForLatency(t *testing.T) {
	s := New(Config{
		Directory: mockDirectory{alice.Email: alice},
		Latency:   20 * time.Millisecond,
	})

	start := time.Now()
	ok, err := s.Login(context.Background(), alice.Email, "pw")
	if err != nil || !ok {
		t.Fatalf("expected successful login, got (%v, %v)", ok, err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("expected login to wait at least 20ms, took %v", elapsed)
	}
}

func TestRegisterAlwaysSucceeds(t *testing.T) {
	slot := storage.NewMemory()
	s := newTestStore(slot)

	ok, err := s.Register(context.Background(), model.Profile{Username: "bob", Email: "bob@example.com", Avatar: "https://img/bob.png"})
	if err != nil || !ok {
		t.Fatalf("expected register to succeed, got (%v, %v)", ok, err)
	}

	current, signedIn := s.Current()
	if !signedIn {
		t.Fatal("expected registered identity to be current")
	}
	if current.Username != "bob" || current.Email != "bob@example.com" || current.Avatar != "https://img/bob.png" {
		t.Errorf("expected profile fields to be copied, got %+v", current)
	}
	if current.SubscriberCount != 0 {
		t.Errorf("expected zero subscribers, got %d", current.SubscriberCount)
	}
	if current.CreatedAt != "2024-03-05" {
		t.Errorf("expected createdAt 2024-03-05, got %q", current.CreatedAt)
	}
	if current.ID == "" {
		t.Error("expected an id to be assigned")
	}

	stored, found := persisted(t, slot)
	if !found || stored != current {
		t.Errorf("expected persisted %+v, got %+v", current, stored)
	}
}

func TestRegisterAssignsUniqueIDs(t *testing.T) {
	s := newTestStore(storage.NewMemory())
	_, _ = s.Register(context.Background(), model.Profile{Username: "a"})
	first, _ := s.Current()
	_, _ = s.Register(context.Background(), model.Profile{Username: "b"})
	second, _ := s.Current()

	if first.ID == second.ID {
		t.Errorf("expected distinct ids, both were %q", first.ID)
	}
}

func TestLogout(t *testing.T) {
	slot := storage.NewMemory()
	s := newTestStore(slot)
	_, _ = s.Login(context.Background(), alice.Email, "pw")

	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, signedIn := s.Current(); signedIn {
		t.Error("expected to be signed out")
	}
	if _, found := persisted(t, slot); found {
		t.Error("expected persisted slot to be removed")
	}
}

func TestLogoutClearsIdentityEvenWhenRemoveFails(t *testing.T) {
	slot := &failingSlot{Slot: storage.NewMemory(), removeErr: errors.New("read-only")}
	s := newTestStore(slot)
	_, _ = s.Login(context.Background(), alice.Email, "pw")

	if err := s.Logout(context.Background()); err == nil {
		t.Error("expected remove failure to be reported")
	}
	if _, signedIn := s.Current(); signedIn {
		t.Error("expected to be signed out regardless")
	}
}

func TestRestore(t *testing.T) {
	slot := storage.NewMemory()
	data, _ := json.Marshal(alice)
	_ = slot.Save(context.Background(), SlotKey, data)

	s := newTestStore(slot)
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	current, signedIn := s.Current()
	if !signedIn || current != alice {
		t.Errorf("expected restored %+v, got %+v", alice, current)
	}
}

func TestRestoreEmptySlot(t *testing.T) {
	s := newTestStore(storage.NewMemory())
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, signedIn := s.Current(); signedIn {
		t.Error("expected to be signed out")
	}
}

func TestRestoreIgnoresGarbage(t *testing.T) {
	slot := storage.NewMemory()
	_ = slot.Save(context.Background(), SlotKey, []byte("not json"))

	s := newTestStore(slot)
	if err := s.Restore(context.Background()); err != nil {
		t.Fatalf("expected garbage to be ignored, got %v", err)
	}
	if _, signedIn := s.Current(); signedIn {
		t.Error("expected to be signed out")
	}
}

func TestSessionSurvivesRestartWithFileSlot(t *testing.T) {
	dir := t.TempDir()
	slot, err := storage.NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = newTestStore(slot).Login(context.Background(), alice.Email, "pw")

	reopened, _ := storage.NewFile(dir)
	s := newTestStore(reopened)
	if err := s.Restore(context.Background()); err != nil {
		t.Fatal(err)
	}
	if current, signedIn := s.Current(); !signedIn || current.ID != alice.ID {
		t.Errorf("expected alice after restart, got %+v", current)
	}
}
