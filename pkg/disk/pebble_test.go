package disk

import (
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/muninn-cache/muninn/pkg/shape"
)

func newTestPebble(t *testing.T) *PebbleStore {
	t.Helper()

	reg := shape.NewRegistry()
	if err := reg.Register("User", User{}); err != nil {
		t.Fatalf("Failed to register User: %v", err)
	}

	store, err := OpenPebble(filepath.Join(t.TempDir(), "pebble"), shape.NewResolver(reg))
	if err != nil {
		t.Fatalf("Failed to open pebble store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestPebbleStore_RoundTrip(t *testing.T) {
	store := newTestPebble(t)

	users := []User{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bo"}}
	record, err := store.NewRecord(users)
	if err != nil {
		t.Fatalf("Failed to build record: %v", err)
	}

	if err := store.SaveRecord("users", record, false, ""); err != nil {
		t.Fatalf("Failed to save record: %v", err)
	}

	retrieved, ok := store.RetrieveRecord("users", false, "")
	if !ok {
		t.Fatal("Expected record, got absence")
	}

	got, isSlice := retrieved.Data.([]User)
	if !isSlice {
		t.Fatalf("Expected []User, got %T", retrieved.Data)
	}
	if !reflect.DeepEqual(got, users) {
		t.Errorf("Round trip mismatch: got %+v, want %+v", got, users)
	}
	if retrieved.SizeOnMb <= 0 {
		t.Errorf("SizeOnMb should be recomputed, got %f", retrieved.SizeOnMb)
	}
}

func TestPebbleStore_Encrypted(t *testing.T) {
	store := newTestPebble(t)

	record, err := store.NewRecord(User{ID: 7, Name: "Cy"})
	if err != nil {
		t.Fatalf("Failed to build record: %v", err)
	}
	if err := store.SaveRecord("secret", record, true, "hunter2"); err != nil {
		t.Fatalf("Failed to save encrypted record: %v", err)
	}

	if _, ok := store.RetrieveRecord("secret", false, ""); ok {
		t.Error("Sealed bytes decoded without decryption")
	}
	if _, ok := store.RetrieveRecord("secret", true, "wrong"); ok {
		t.Error("Expected absence with wrong key")
	}

	retrieved, ok := store.RetrieveRecord("secret", true, "hunter2")
	if !ok {
		t.Fatal("Expected record, got absence")
	}
	if user := retrieved.Data.(User); user.Name != "Cy" {
		t.Errorf("Retrieved user mismatch: %+v", user)
	}
}

func TestPebbleStore_EvictAndKeys(t *testing.T) {
	store := newTestPebble(t)

	for _, key := range []string{"a", "b", "c"} {
		record, err := store.NewRecord(User{ID: 1, Name: key})
		if err != nil {
			t.Fatalf("Failed to build record: %v", err)
		}
		if err := store.SaveRecord(key, record, false, ""); err != nil {
			t.Fatalf("Failed to save record: %v", err)
		}
	}

	keys := store.AllKeys()
	sort.Strings(keys)
	if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Errorf("AllKeys mismatch: %v", keys)
	}

	if err := store.Evict("b"); err != nil {
		t.Fatalf("Evict failed: %v", err)
	}
	if err := store.Evict("b"); err != nil {
		t.Errorf("Second evict should be a no-op, got %v", err)
	}
	if _, ok := store.RetrieveRecord("b", false, ""); ok {
		t.Error("Record still present after evict")
	}

	if err := store.EvictAll(); err != nil {
		t.Fatalf("EvictAll failed: %v", err)
	}
	if keys := store.AllKeys(); len(keys) != 0 {
		t.Errorf("Expected empty store, got %v", keys)
	}
}

func TestPebbleStore_ImplementsPersistence(t *testing.T) {
	var _ Persistence = (*PebbleStore)(nil)
	var _ Persistence = (*Disk)(nil)
}
