package bbolt

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"go.etcd.io/bbolt"

	"github.com/jmcleod/lockbox/wallet"
)

func newTestDB(t *testing.T) *bbolt.DB {
	t.Helper()
	f, err := os.CreateTemp("", "wallet-test-*.db")
	if err != nil {
		t.Fatalf("could not create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		os.Remove(path)
		t.Fatalf("could not open db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})
	return db
}

func TestBBoltWallet(t *testing.T) {
	ctx := t.Context()
	s := New(newTestDB(t), "unit")

	t.Run("text round-trip", func(t *testing.T) {
		if err := s.Put(ctx, "Batman", wallet.Text("quoteA")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := s.Put(ctx, "Batman", wallet.Text("quoteB")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := s.Get(ctx, "Batman")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Kind() != wallet.KindText || got.Text() != "quoteB" {
			t.Errorf("expected quoteB, got %v %q", got.Kind(), got.Text())
		}
	})

	t.Run("binary round-trip", func(t *testing.T) {
		blob := []byte{0x00, 0xff, 0xfe, 0x80, 0x50, 0x4b, 0x03, 0x04}
		if err := s.Put(ctx, "zipFile", wallet.Binary(blob)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := s.Get(ctx, "zipFile")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Kind() != wallet.KindBinary || !bytes.Equal(got.Bytes(), blob) {
			t.Errorf("binary value did not round-trip: %v", got.Bytes())
		}
	})

	t.Run("type change leaves no trace", func(t *testing.T) {
		if err := s.Put(ctx, "zipFile", wallet.Text("now text")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := s.Get(ctx, "zipFile")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Kind() != wallet.KindText || got.Bytes() != nil {
			t.Errorf("stale binary payload survived a type change: %v", got)
		}
	})

	t.Run("list names", func(t *testing.T) {
		names, err := s.ListNames(ctx)
		if err != nil {
			t.Fatalf("ListNames failed: %v", err)
		}
		if len(names) != 2 {
			t.Errorf("expected 2 names, got %v", names)
		}
	})

	t.Run("get all", func(t *testing.T) {
		all, err := s.GetAll(ctx)
		if err != nil {
			t.Fatalf("GetAll failed: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(all))
		}
		if all["Batman"].Text() != "quoteB" {
			t.Errorf("unexpected Batman value: %q", all["Batman"].Text())
		}
	})

	t.Run("idempotent remove", func(t *testing.T) {
		if err := s.Remove(ctx, "Batman"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if err := s.Remove(ctx, "Batman"); err != nil {
			t.Errorf("removing an absent key should succeed, got %v", err)
		}
		if _, err := s.Get(ctx, "Batman"); !errors.Is(err, wallet.ErrNotFound) {
			t.Errorf("expected ErrNotFound after remove, got %v", err)
		}
	})

	t.Run("argument validation", func(t *testing.T) {
		if err := s.Put(ctx, "", wallet.Text("x")); !errors.Is(err, wallet.ErrNameRequired) {
			t.Errorf("Put: expected ErrNameRequired, got %v", err)
		}
		if _, err := s.Get(ctx, ""); !errors.Is(err, wallet.ErrNameRequired) {
			t.Errorf("Get: expected ErrNameRequired, got %v", err)
		}
		if err := s.Remove(ctx, ""); !errors.Is(err, wallet.ErrNameRequired) {
			t.Errorf("Remove: expected ErrNameRequired, got %v", err)
		}
		if _, err := s.Contains(ctx, ""); !errors.Is(err, wallet.ErrNameRequired) {
			t.Errorf("Contains: expected ErrNameRequired, got %v", err)
		}
	})

	t.Run("unsupported type rejected without write", func(t *testing.T) {
		var zero wallet.Value
		if err := s.Put(ctx, "bad", zero); !errors.Is(err, wallet.ErrUnknownType) {
			t.Fatalf("expected ErrUnknownType, got %v", err)
		}
		found, err := s.Contains(ctx, "bad")
		if err != nil {
			t.Fatalf("Contains failed: %v", err)
		}
		if found {
			t.Error("rejected Put must not create a record")
		}
	})
}

func TestBBoltWalletEmptyStates(t *testing.T) {
	ctx := t.Context()
	s := New(newTestDB(t), "empty")

	names, err := s.ListNames(ctx)
	if err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty map, got %v", all)
	}

	found, err := s.Contains(ctx, "anything")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if found {
		t.Error("fresh store must not contain anything")
	}
}

func TestBBoltWalletPrefixIsolation(t *testing.T) {
	ctx := t.Context()
	db := newTestDB(t)
	a := New(db, "prefixA")
	b := New(db, "prefixB")

	if err := a.Put(ctx, "shared-name", wallet.Text("from A")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, err := b.Get(ctx, "shared-name"); !errors.Is(err, wallet.ErrNotFound) {
		t.Errorf("expected ErrNotFound on the other prefix, got %v", err)
	}
	names, err := b.ListNames(ctx)
	if err != nil {
		t.Fatalf("ListNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("prefix B lists prefix A's keys: %v", names)
	}

	if err := b.Put(ctx, "shared-name", wallet.Text("from B")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := a.Get(ctx, "shared-name")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Text() != "from A" {
		t.Errorf("prefix B's write leaked into prefix A: %q", got.Text())
	}
}

func TestNewFromFile(t *testing.T) {
	f, err := os.CreateTemp("", "wallet-file-test-*.db")
	if err != nil {
		t.Fatalf("could not create temp file: %v", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	s, err := NewFromFile(path, "default", nil)
	if err != nil {
		t.Fatalf("NewFromFile failed: %v", err)
	}
	defer s.Close()

	if s.db == nil {
		t.Error("s.db is nil")
	}

	// Invalid path fails.
	_, err = NewFromFile("/nonexistent/path/to/db", "default", nil)
	if err == nil {
		t.Error("expected error for invalid path")
	}
}
