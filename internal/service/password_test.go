package service

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("pw12345")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if digest == "pw12345" {
		t.Fatalf("expected digest, got plaintext")
	}
	if !CheckPassword("pw12345", digest) {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword("pw12345x", digest) {
		t.Fatalf("expected altered password to fail")
	}
}

func TestHashPassword_Randomized(t *testing.T) {
	first, err := HashPassword("pw12345")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("pw12345")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatalf("expected salted digests to differ")
	}
}

func TestHashPassword_RejectsBadInput(t *testing.T) {
	if _, err := HashPassword(""); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword for empty password, got %v", err)
	}
	long := strings.Repeat("a", maxPasswordBytes+1)
	if _, err := HashPassword(long); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword for oversized password, got %v", err)
	}
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	if CheckPassword("pw12345", "not-a-bcrypt-digest") {
		t.Fatalf("expected malformed digest to fail verification")
	}
	if CheckPassword("", "") {
		t.Fatalf("expected empty input to fail verification")
	}
}
