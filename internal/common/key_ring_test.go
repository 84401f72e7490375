package common

import "testing"

func TestKeyRing_RoundRobin(t *testing.T) {
	ring := NewKeyRing([]string{"key0", "key1"})

	expected := []string{"key0", "key1", "key0", "key1", "key0"}
	for i, want := range expected {
		got, ok := ring.Next()
		if !ok {
			t.Fatalf("call %d: expected a key, got none", i)
		}
		if got != want {
			t.Errorf("call %d: expected %s, got %s", i, want, got)
		}
	}
}

func TestKeyRing_Empty(t *testing.T) {
	ring := NewKeyRing(nil)

	for i := 0; i < 3; i++ {
		key, ok := ring.Next()
		if ok {
			t.Errorf("call %d: expected no key, got %q", i, key)
		}
		if key != "" {
			t.Errorf("call %d: expected empty sentinel, got %q", i, key)
		}
	}
}

func TestKeyRing_DropsBlankKeys(t *testing.T) {
	ring := NewKeyRing([]string{"", "key0", ""})

	if ring.Size() != 1 {
		t.Fatalf("expected size 1, got %d", ring.Size())
	}

	key, ok := ring.Next()
	if !ok || key != "key0" {
		t.Errorf("expected key0, got %q (ok=%v)", key, ok)
	}
}

func TestKeyRing_Reset(t *testing.T) {
	ring := NewKeyRing([]string{"key0", "key1", "key2"})

	ring.Next()
	ring.Next()
	ring.Reset()

	key, _ := ring.Next()
	if key != "key0" {
		t.Errorf("expected key0 after reset, got %s", key)
	}
}
