package auth

import (
	"testing"
	"time"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestGenerateAndValidateToken(t *testing.T) {
	tm := NewTokenManager(testKey())

	token, err := tm.GenerateToken("mapgen-cli", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "mapgen-cli" {
		t.Fatalf("subject = %q, want mapgen-cli", claims.Subject)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	tm := NewTokenManager(testKey())

	token, err := tm.GenerateToken("mapgen-cli", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := tm.ValidateToken(token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestValidateTokenWrongKeyRejected(t *testing.T) {
	tm := NewTokenManager(testKey())
	other := NewTokenManager([]byte("ffffffffffffffffffffffffffffffff"))

	token, err := tm.GenerateToken("mapgen-cli", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected token signed with a different key to fail validation")
	}
}
