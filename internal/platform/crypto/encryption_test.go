package crypto

import (
	"strings"
	"testing"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestSealOpen(t *testing.T) {
	s, err := New(testKey)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !s.Configured() {
		t.Fatal("expected configured sealer")
	}

	sealed, err := s.Seal("eyJhbGciOi.token")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if strings.Contains(sealed, "token") {
		t.Fatal("sealed value leaks plaintext")
	}

	opened, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened != "eyJhbGciOi.token" {
		t.Fatalf("round trip mismatch: %q", opened)
	}
}

func TestOpenWithWrongKey(t *testing.T) {
	s, _ := New(testKey)
	sealed, _ := s.Seal("secret")

	other, err := New(strings.Repeat("ab", 32))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := other.Open(sealed); err == nil {
		t.Fatal("expected authentication failure")
	}
}

func TestUnconfiguredPassThrough(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	sealed, _ := s.Seal("plain")
	if sealed != "plain" {
		t.Fatalf("expected pass-through, got %q", sealed)
	}
}

func TestNewRejectsShortKey(t *testing.T) {
	if _, err := New("short"); err == nil {
		t.Fatal("expected key length error")
	}
}
