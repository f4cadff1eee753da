package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Generate("school-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.SchoolID != "school-1" {
		t.Errorf("schoolID = %q, want school-1", claims.SchoolID)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate("school-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = NewTokenManager("secret-b", time.Hour).Validate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Generate("school-1")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
