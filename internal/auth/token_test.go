package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewTokenManager_EmptySecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Minute); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTokenManager_IssueVerify(t *testing.T) {
	mgr, err := NewTokenManager("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}

	token, err := mgr.Issue("admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	subject, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if subject != "admin" {
		t.Fatalf("expected subject admin, got %s", subject)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", time.Minute)
	verifier, _ := NewTokenManager("secret-b", time.Minute)

	token, err := issuer.Issue("admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	mgr, _ := NewTokenManager("test-secret", time.Minute)

	now := time.Now().Add(-time.Hour)
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	})
	raw, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := mgr.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

// Токен с alg=none не должен проходить проверку.
func TestTokenManager_RejectsNoneAlgorithm(t *testing.T) {
	mgr, _ := NewTokenManager("test-secret", time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "admin"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := mgr.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestTokenManager_GarbageInput(t *testing.T) {
	mgr, _ := NewTokenManager("test-secret", time.Minute)

	if _, err := mgr.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
