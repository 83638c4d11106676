package application

import (
	"errors"
	"strings"
	"testing"
)

var testHashParams = Argon2idParams{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestPasswordHashing(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := CreatePasswordHash("correct horse", testHashParams)
		if err != nil {
			t.Fatalf("CreatePasswordHash returned error: %v", err)
		}
		if !strings.HasPrefix(hash, "$argon2id$v=") {
			t.Fatalf("unexpected hash encoding %q", hash)
		}
		if err := VerifyPassword(hash, "correct horse"); err != nil {
			t.Fatalf("VerifyPassword rejected the right password: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		hash, err := CreatePasswordHash("correct horse", testHashParams)
		if err != nil {
			t.Fatalf("CreatePasswordHash returned error: %v", err)
		}
		if err := VerifyPassword(hash, "battery staple"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("salts differ between hashes", func(t *testing.T) {
		first, err := CreatePasswordHash("same", testHashParams)
		if err != nil {
			t.Fatalf("CreatePasswordHash returned error: %v", err)
		}
		second, err := CreatePasswordHash("same", testHashParams)
		if err != nil {
			t.Fatalf("CreatePasswordHash returned error: %v", err)
		}
		if first == second {
			t.Fatal("expected distinct salts to produce distinct hashes")
		}
	})

	t.Run("malformed hash", func(t *testing.T) {
		if err := VerifyPassword("not-a-hash", "anything"); !errors.Is(err, ErrInvalidPasswordHash) {
			t.Fatalf("expected ErrInvalidPasswordHash, got %v", err)
		}
	})
}
