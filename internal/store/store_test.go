package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/cyberedu/internal/account"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cyberedu.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testUser(name, email string) *account.UserRecord {
	return &account.UserRecord{
		ID:           uuid.NewString(),
		DisplayName:  name,
		Email:        email,
		PasswordHash: account.HashPassword("hunter2-xyz"),
		Cohort:       account.CohortYouth,
		Age:          19,
		Settings:     account.DefaultSettings(),
		CreatedAt:    time.Now().UTC(),
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"users", "module_progress", "app_state", "events"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestOpenOrResetRecoversCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cyberedu.db")
	if err := os.WriteFile(path, []byte("this is not a sqlite database"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	s, err := OpenOrReset(path, nil)
	if err != nil {
		t.Fatalf("open or reset: %v", err)
	}
	defer s.Close()

	// The recovered store is empty and writable.
	ctx := context.Background()
	if _, err := s.UserRepo().FindByIdentity(ctx, "maria@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("find on fresh store: err = %v, want ErrNotFound", err)
	}
	if err := s.UserRepo().Add(ctx, testUser("Maria", "maria@example.com")); err != nil {
		t.Errorf("add on fresh store: %v", err)
	}

	// The unreadable file was moved aside, not deleted.
	backups, err := filepath.Glob(path + ".corrupt-*")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("backup files = %d, want 1", len(backups))
	}
	raw, err := os.ReadFile(backups[0])
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(raw) != "this is not a sqlite database" {
		t.Errorf("backup content changed")
	}
}

func TestUserRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cyberedu.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	u := testUser("Maria", "maria@example.com")
	ctx := context.Background()
	if err := s.UserRepo().Add(ctx, u); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Reload the store fresh and look the record up both ways.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	for _, identity := range []string{"maria@example.com", "Maria"} {
		got, err := s2.UserRepo().FindByIdentity(ctx, identity)
		if err != nil {
			t.Fatalf("find %q: %v", identity, err)
		}
		if got.ID != u.ID {
			t.Errorf("find %q: id = %q, want %q", identity, got.ID, u.ID)
		}
		if got.PasswordHash != u.PasswordHash {
			t.Errorf("find %q: password hash mismatch", identity)
		}
		if got.Cohort != account.CohortYouth || got.Age != 19 {
			t.Errorf("find %q: cohort/age = %s/%d", identity, got.Cohort, got.Age)
		}
		if got.Settings.Language != "es" {
			t.Errorf("find %q: language = %q, want es", identity, got.Settings.Language)
		}
	}
}

func TestFindByIdentityCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.UserRepo().Add(ctx, testUser("Maria", "maria@example.com")); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, identity := range []string{"MARIA@EXAMPLE.COM", "mArIa", "  maria  "} {
		if _, err := s.UserRepo().FindByIdentity(ctx, identity); err != nil {
			t.Errorf("find %q: %v", identity, err)
		}
	}

	if _, err := s.UserRepo().FindByIdentity(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("find unknown: err = %v, want ErrNotFound", err)
	}
}

func TestAddDuplicateIdentity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.UserRepo().Add(ctx, testUser("Maria", "maria@example.com")); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Email differing only by case.
	err := s.UserRepo().Add(ctx, testUser("Other", "MARIA@example.com"))
	if !errors.Is(err, ErrDuplicateIdentity) {
		t.Errorf("duplicate email: err = %v, want ErrDuplicateIdentity", err)
	}

	// Display name differing only by case.
	err = s.UserRepo().Add(ctx, testUser("mARIA", "other@example.com"))
	if !errors.Is(err, ErrDuplicateIdentity) {
		t.Errorf("duplicate name: err = %v, want ErrDuplicateIdentity", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := testUser("Maria", "maria@example.com")
	if err := s.UserRepo().Add(ctx, u); err != nil {
		t.Fatalf("add: %v", err)
	}

	u.Age = 25
	u.Settings.Narration = true
	if err := s.UserRepo().Update(ctx, u); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.UserRepo().GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Age != 25 || !got.Settings.Narration {
		t.Errorf("update not persisted: age=%d narration=%v", got.Age, got.Settings.Narration)
	}

	missing := testUser("Ghost", "ghost@example.com")
	if err := s.UserRepo().Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteUserCascadesProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := testUser("Maria", "maria@example.com")
	if err := s.UserRepo().Add(ctx, u); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.ProgressRepo().Upsert(ctx, u.ID, "phishing", 40); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := s.UserRepo().Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.UserRepo().GetByID(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
	if _, err := s.ProgressRepo().Get(ctx, u.ID, "phishing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("progress after delete: err = %v, want ErrNotFound", err)
	}

	if err := s.UserRepo().Delete(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}

func TestProgressUpsertAndForUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := testUser("Maria", "maria@example.com")
	if err := s.UserRepo().Add(ctx, u); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := s.ProgressRepo().Get(ctx, u.ID, "phishing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get before write: err = %v, want ErrNotFound", err)
	}

	if err := s.ProgressRepo().Upsert(ctx, u.ID, "phishing", 30); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.ProgressRepo().Upsert(ctx, u.ID, "phishing", 70); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if err := s.ProgressRepo().Upsert(ctx, u.ID, "privacy", 10); err != nil {
		t.Fatalf("upsert privacy: %v", err)
	}

	got, err := s.ProgressRepo().Get(ctx, u.ID, "phishing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != 70 {
		t.Errorf("phishing = %v, want 70", got)
	}

	list, err := s.ProgressRepo().ForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("modules = %d, want 2", len(list))
	}
}

func TestStateRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.StateRepo()

	if _, err := repo.Get(ctx, RememberedUserKey); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get empty: err = %v, want ErrNotFound", err)
	}

	if err := repo.Set(ctx, RememberedUserKey, "user-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, RememberedUserKey, "user-2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, err := repo.Get(ctx, RememberedUserKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "user-2" {
		t.Errorf("value = %q, want user-2", v)
	}

	if err := repo.Clear(ctx, RememberedUserKey); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := repo.Get(ctx, RememberedUserKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after clear: err = %v, want ErrNotFound", err)
	}
	// Clearing again is not an error.
	if err := repo.Clear(ctx, RememberedUserKey); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestEventAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	kinds := []string{EventRegister, EventLogin, EventLogout}
	for _, k := range kinds {
		if err := repo.Append(ctx, k, "user-1", "detail for "+k); err != nil {
			t.Fatalf("append %s: %v", k, err)
		}
	}

	events, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	// Newest first.
	if events[0].Kind != EventLogout {
		t.Errorf("first kind = %s, want %s", events[0].Kind, EventLogout)
	}
	if events[0].Seq <= events[2].Seq {
		t.Errorf("sequence not descending: %d .. %d", events[0].Seq, events[2].Seq)
	}
}
