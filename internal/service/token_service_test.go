package service

import (
	"errors"
	"testing"
	"time"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewTokenService("   ", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	svc, err := NewTokenService("secret", 0)
	if err != nil {
		t.Fatalf("new token service failed: %v", err)
	}
	if svc.TTL() != 7*24*time.Hour {
		t.Fatalf("default ttl should be 7 days, got %s", svc.TTL())
	}
}

func TestTokenIssueAndVerify(t *testing.T) {
	svc, _ := NewTokenService("test-secret-value", time.Hour)
	admin := &models.Admin{ID: "a-1", Email: "chef@foodie.test", Role: constants.RoleSuperAdmin}

	token, expiresAt, err := svc.Issue(admin)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiry should be in the future")
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.AdminID != "a-1" || claims.Role != constants.RoleSuperAdmin || claims.Email != "chef@foodie.test" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti")
	}
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	svc, _ := NewTokenService("test-secret-value", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }
	token, _, err := svc.Issue(&models.Admin{ID: "a-1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	svc.now = time.Now

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expired token should also be invalid")
	}
}

func TestTokenVerifyRejectsTampering(t *testing.T) {
	svc, _ := NewTokenService("test-secret-value", time.Hour)
	other, _ := NewTokenService("another-secret", time.Hour)
	token, _, _ := other.Issue(&models.Admin{ID: "a-1"})

	cases := map[string]string{
		"wrong secret": token,
		"malformed":    "not.a.token",
		"empty":        "",
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  "a-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token failed: %v", err)
	}
	cases["alg none"] = none

	for name, raw := range cases {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("%s: expected invalid token, got %v", name, err)
		}
	}
}

func TestRemainingTTL(t *testing.T) {
	svc, _ := NewTokenService("test-secret-value", time.Hour)
	token, _, _ := svc.Issue(&models.Admin{ID: "a-1"})
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	remaining := svc.RemainingTTL(claims)
	if remaining <= 0 || remaining > time.Hour {
		t.Fatalf("unexpected remaining ttl: %s", remaining)
	}
	if svc.RemainingTTL(nil) != 0 {
		t.Fatalf("nil claims should have no ttl")
	}
}
