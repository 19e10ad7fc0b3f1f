package richtext

import (
	"strings"
	"testing"
)

func TestKey_LengthAndAlphabet(t *testing.T) {
	for range 50 {
		k := Key()
		if len(k) != 12 {
			t.Fatalf("expected key length 12, got %d (%q)", len(k), k)
		}
		for _, c := range k {
			if !strings.ContainsRune(keyAlphabet, c) {
				t.Fatalf("key %q contains %q outside the alphanumeric alphabet", k, c)
			}
		}
	}
}

func TestKeyN(t *testing.T) {
	for _, n := range []int{1, 8, 32} {
		if k := KeyN(n); len(k) != n {
			t.Errorf("KeyN(%d): expected length %d, got %d", n, n, len(k))
		}
	}
}

func TestKey_NoImmediateRepeats(t *testing.T) {
	seen := make(map[string]bool)
	for range 200 {
		k := Key()
		if seen[k] {
			t.Fatalf("key %q repeated within 200 draws", k)
		}
		seen[k] = true
	}
}
