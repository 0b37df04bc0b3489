package util

import (
	"testing"
	"time"
)

func TestAdminJWTRoundtrip(t *testing.T) {
	secret := "test-secret-test-secret-test-secret"

	token, err := GenerateAdminJWT("admin", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseAdminJWT(token, secret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Username != "admin" {
		t.Fatalf("username = %q, want admin", claims.Username)
	}
}

func TestAdminJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAdminJWT("admin", "secret-one-secret-one-secret-one", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAdminJWT(token, "secret-two-secret-two-secret-two"); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestAdminJWTRejectsExpired(t *testing.T) {
	token, err := GenerateAdminJWT("admin", "secret-one-secret-one-secret-one", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAdminJWT(token, "secret-one-secret-one-secret-one"); err == nil {
		t.Fatal("expired token was accepted")
	}
}
