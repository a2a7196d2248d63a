package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/club-roster-api/internal/config"
	"github.com/club-roster-api/internal/mocks"
	"github.com/club-roster-api/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) (service.AuthService, *mocks.MockUserRepository) {
	t.Helper()
	users := mocks.NewMockUserRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	users.EnsureUser(context.Background(), "admin", string(hash))

	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
	return service.NewAuthService(users, cfg, zerolog.Nop()), users
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	auth, _ := newAuth(t)

	token, err := auth.Login(context.Background(), "admin", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a signed token")
	}

	username, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if username != "admin" {
		t.Errorf("Expected username admin, got %s", username)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	auth, _ := newAuth(t)

	_, err := auth.Login(context.Background(), "nobody", "correct-horse")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
	auth, _ := newAuth(t)

	if _, err := auth.VerifyToken("not-a-token"); err == nil {
		t.Fatal("Expected error for malformed token")
	}
}

func TestVerifyToken_RejectsForeignSignature(t *testing.T) {
	auth, _ := newAuth(t)

	users := mocks.NewMockUserRepository()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	users.EnsureUser(context.Background(), "admin", string(hash))
	other := service.NewAuthService(users, &config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour}, zerolog.Nop())

	token, err := other.Login(context.Background(), "admin", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := auth.VerifyToken(token); err == nil {
		t.Fatal("Expected token signed with a different secret to be rejected")
	}
}
