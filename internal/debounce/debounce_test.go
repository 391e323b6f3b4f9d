package debounce

import "testing"

func TestLedger_PutTake(t *testing.T) {
	l := NewLedger[int]()

	gen := l.Put("light/1/bri", 128)
	v, ok := l.Take("light/1/bri", gen)
	if !ok {
		t.Fatal("current generation should be taken")
	}
	if v != 128 {
		t.Errorf("got %d, want 128", v)
	}

	// Taken means gone
	if _, ok := l.Take("light/1/bri", gen); ok {
		t.Error("second Take of same generation should fail")
	}
}

func TestLedger_LatestWins(t *testing.T) {
	l := NewLedger[int]()

	gen1 := l.Put("light/1/bri", 100)
	gen2 := l.Put("light/1/bri", 200)

	// The older timer fires first and must be dropped
	if _, ok := l.Take("light/1/bri", gen1); ok {
		t.Error("superseded generation should not be taken")
	}

	v, ok := l.Take("light/1/bri", gen2)
	if !ok {
		t.Fatal("latest generation should be taken")
	}
	if v != 200 {
		t.Errorf("got %d, want 200", v)
	}
}

func TestLedger_KeysIndependent(t *testing.T) {
	l := NewLedger[int]()

	genA := l.Put("light/1/bri", 10)
	genB := l.Put("light/2/bri", 20)

	if _, ok := l.Take("light/1/bri", genA); !ok {
		t.Error("key A should be unaffected by key B's Put")
	}
	if v, ok := l.Take("light/2/bri", genB); !ok || v != 20 {
		t.Errorf("key B: ok=%v v=%d", ok, v)
	}
}

func TestLedger_WrongKey(t *testing.T) {
	l := NewLedger[int]()

	gen := l.Put("light/1/bri", 10)
	if _, ok := l.Take("light/9/bri", gen); ok {
		t.Error("Take with unknown key should fail")
	}
	if _, ok := l.Take("light/1/bri", gen); !ok {
		t.Error("original key should still be pending")
	}
}

func TestLedger_Flush(t *testing.T) {
	l := NewLedger[int]()

	l.Put("a", 1)
	gen := l.Put("b", 2)
	l.Put("b", 3) // supersedes

	got := l.Flush()
	if len(got) != 2 {
		t.Fatalf("Flush returned %d entries, want 2", len(got))
	}
	if got["a"] != 1 || got["b"] != 3 {
		t.Errorf("Flush = %v", got)
	}
	if l.Len() != 0 {
		t.Error("ledger should be empty after Flush")
	}

	// Timers firing after Flush find nothing
	if _, ok := l.Take("b", gen); ok {
		t.Error("Take after Flush should fail")
	}
}
