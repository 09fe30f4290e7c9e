package jwt

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := New(Config{
		SecretKey: testSecret,
		Issuer:    "renov-srv",
		Audience:  []string{"renov-app"},
		TTL:       ttl,
	})
	if err != nil {
		t.Fatalf("manager init failed: %v", err)
	}
	return m
}

func TestNew(t *testing.T) {
	t.Run("rejects short secret", func(t *testing.T) {
		if _, err := New(Config{SecretKey: "short"}); err == nil {
			t.Error("expected error for short secret")
		}
	})
}

func TestGenerateAndVerifyToken(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, err := m.GenerateToken("user-42", "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	t.Run("claims round trip", func(t *testing.T) {
		claims, err := m.VerifyToken(token)
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if claims.Subject != "user-42" {
			t.Errorf("subject mismatch: got %q", claims.Subject)
		}
		if claims.Role != "user" {
			t.Errorf("role mismatch: got %q", claims.Role)
		}
		if claims.Issuer != "renov-srv" {
			t.Errorf("issuer mismatch: got %q", claims.Issuer)
		}
	})

	t.Run("scope payload", func(t *testing.T) {
		p, err := m.Verify(token)
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if p.UserID != "user-42" {
			t.Errorf("user id mismatch: got %q", p.UserID)
		}
		if p.ExpiresAt <= p.IssuedAt {
			t.Error("expiry should be after issue time")
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		parts := strings.Split(token, ".")
		tampered := parts[0] + "." + parts[1] + ".AAAA"
		if _, err := m.VerifyToken(tampered); err == nil {
			t.Error("expected error for tampered signature")
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := New(Config{
			SecretKey: "ffffffffffffffffffffffffffffffff",
			TTL:       time.Hour,
		})
		if err != nil {
			t.Fatalf("manager init failed: %v", err)
		}
		if _, err := other.VerifyToken(token); err == nil {
			t.Error("expected error for wrong key")
		}
	})
}

func TestExpiredToken(t *testing.T) {
	m := newTestManager(t, -time.Minute)
	token, err := m.GenerateToken("user-42", "user")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := m.VerifyToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}
