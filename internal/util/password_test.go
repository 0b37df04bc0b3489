package util

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerifyRoundtrip(t *testing.T) {
	hash, err := HashPassword("spravne-heslo-123")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("hash has unexpected format: %s", hash)
	}

	ok, err := VerifyPassword("spravne-heslo-123", hash)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("correct password rejected")
	}

	ok, err = VerifyPassword("spatne-heslo", hash)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("stejne")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("stejne")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestVerifyRejectsMalformedHashes(t *testing.T) {
	bad := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}
	for _, h := range bad {
		if _, err := VerifyPassword("x", h); !errors.Is(err, ErrMalformedHash) {
			t.Errorf("hash %q: got err %v, want ErrMalformedHash", h, err)
		}
	}
}
