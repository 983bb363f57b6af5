package services

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("session-test-secret")

	token, err := IssueSessionToken(secret, 42, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	userID, err := ParseSessionToken(secret, token)
	if err != nil {
		t.Fatalf("ParseSessionToken failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("Expected user id 42, got %d", userID)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := IssueSessionToken([]byte("secret-a"), 1, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	if _, err := ParseSessionToken([]byte("secret-b"), token); err == nil {
		t.Error("Expected parse failure with a different secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	secret := []byte("session-test-secret")

	token, err := IssueSessionToken(secret, 7, -time.Minute)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	if _, err := ParseSessionToken(secret, token); err == nil {
		t.Error("Expected parse failure for an expired token")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, err := ParseSessionToken([]byte("secret"), "not-a-jwt"); err == nil {
		t.Error("Expected parse failure for garbage input")
	}
}
