package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPasswordCost("super-secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: "u1", Role: RoleHR, Name: "Hana Ruiz"}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if parsed.UserID != claims.UserID || parsed.Role != claims.Role || parsed.Name != claims.Name {
		t.Fatalf("claims mismatch: %+v", parsed)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected signature mismatch error")
	}
}

func TestPeekClaimsExpiry(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u2", Role: RoleEmployee}, time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := PeekClaims(token)
	if err != nil {
		t.Fatalf("peek error: %v", err)
	}
	if claims.UserID != "u2" {
		t.Fatalf("expected uid u2, got %q", claims.UserID)
	}
	if claims.Expired(time.Now()) {
		t.Fatal("fresh token should not be expired")
	}
	if !claims.Expired(time.Now().Add(2 * time.Minute)) {
		t.Fatal("token should be expired after ttl")
	}

	if _, err := PeekClaims("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "admin", want: RoleAdmin},
		{in: " HR ", want: RoleHR},
		{in: "Employee", want: RoleEmployee},
		{in: "manager", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseRole(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseRole(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}
