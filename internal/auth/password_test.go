package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	password := "Sup3r$ecret"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt hash, got: %s", hash)
	}
	if !VerifyPassword(password, hash) {
		t.Error("VerifyPassword should accept the original password")
	}
	if VerifyPassword("Wr0ng$ecret", hash) {
		t.Error("VerifyPassword should reject a different password")
	}
}

func TestHashPassword_Uniqueness(t *testing.T) {
	t.Parallel()

	password := "Sup3r$ecret"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	// Same password should produce different hashes due to random salts.
	if hash1 == hash2 {
		t.Error("same password produced identical hashes")
	}
	if !VerifyPassword(password, hash1) || !VerifyPassword(password, hash2) {
		t.Error("both hashes should verify")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Error("malformed hash should never verify")
	}
}

func TestBurnPasswordCheck(t *testing.T) {
	t.Parallel()

	// Must not panic; exists purely for timing equalization.
	BurnPasswordCheck("anything")
}
