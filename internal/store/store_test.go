package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/clockworks/huepanel/internal/db"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	return New(database.DB)
}

func TestStore_PutGet(t *testing.T) {
	s := testStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := s.Put("test", "a", payload{Name: "kitchen", Count: 3}, 0); err != nil {
		t.Fatal(err)
	}

	var got payload
	ok, err := s.Get("test", "a", &got)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if got.Name != "kitchen" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}

	// Missing key
	ok, err = s.Get("test", "missing", &got)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("missing key should report absent")
	}
}

func TestStore_Overwrite(t *testing.T) {
	s := testStore(t)

	if err := s.Put("test", "a", "first", 0); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("test", "a", "second", 0); err != nil {
		t.Fatal(err)
	}

	var got string
	ok, err := s.Get("test", "a", &got)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}

func TestStore_Expiry(t *testing.T) {
	s := testStore(t)

	// Already expired entry is reported absent
	if err := s.Put("test", "stale", "x", -time.Second); err != nil {
		t.Fatal(err)
	}
	var got string
	ok, err := s.Get("test", "stale", &got)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expired entry should report absent")
	}

	// Non-expired entry survives cleanup
	if err := s.Put("test", "fresh", "y", time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CleanupExpired(); err != nil {
		t.Fatal(err)
	}
	ok, _ = s.Get("test", "fresh", &got)
	if !ok {
		t.Error("fresh entry should survive cleanup")
	}
}

func TestStore_DeleteClear(t *testing.T) {
	s := testStore(t)

	_ = s.Put("b1", "a", 1, 0)
	_ = s.Put("b1", "b", 2, 0)
	_ = s.Put("b2", "a", 3, 0)

	removed, err := s.Delete("b1", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Error("Delete should report removal")
	}
	removed, _ = s.Delete("b1", "a")
	if removed {
		t.Error("second Delete should report nothing removed")
	}

	if err := s.Clear("b1"); err != nil {
		t.Fatal(err)
	}
	var got int
	if ok, _ := s.Get("b1", "b", &got); ok {
		t.Error("cleared bucket should be empty")
	}
	if ok, _ := s.Get("b2", "a", &got); !ok {
		t.Error("other buckets should be untouched")
	}
}

func TestPairing_RoundTrip(t *testing.T) {
	s := testStore(t)

	p, err := s.LoadPairing()
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Fatal("fresh store should have no pairing")
	}

	want := Pairing{
		Bridge:   "192.168.1.23",
		Username: "abcdef0123456789",
		PairedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.SavePairing(want); err != nil {
		t.Fatal(err)
	}

	p, err = s.LoadPairing()
	if err != nil {
		t.Fatal(err)
	}
	if p == nil {
		t.Fatal("pairing should be present after save")
	}
	if p.Bridge != want.Bridge || p.Username != want.Username {
		t.Errorf("got %+v, want %+v", p, want)
	}

	if err := s.ClearPairing(); err != nil {
		t.Fatal(err)
	}
	p, _ = s.LoadPairing()
	if p != nil {
		t.Error("pairing should be gone after clear")
	}
}

func TestDiscovery_RoundTrip(t *testing.T) {
	s := testStore(t)

	d, err := s.LoadDiscovery()
	if err != nil {
		t.Fatal(err)
	}
	if d != nil {
		t.Fatal("fresh store should have no discovery result")
	}

	if err := s.SaveDiscovery(Discovery{Addresses: []string{"10.0.0.5"}, FoundAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	d, err = s.LoadDiscovery()
	if err != nil {
		t.Fatal(err)
	}
	if d == nil || len(d.Addresses) != 1 || d.Addresses[0] != "10.0.0.5" {
		t.Errorf("got %+v", d)
	}
}
