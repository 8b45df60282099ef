package auth

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("S3curePass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "S3curePass" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !CheckPassword(hash, "S3curePass") {
		t.Error("expected the correct password to verify")
	}
	if CheckPassword(hash, "WrongPass1") {
		t.Error("expected a wrong password to fail")
	}
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("S3curePass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("S3curePass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Error("expected salted hashes to differ")
	}
}
