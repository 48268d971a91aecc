package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/minhle2212044/greencycle-backend/pkg/config"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "access-secret",
		RefreshSecret:          "refresh-secret",
		Issuer:                 "greencycle",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 43200,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()

	token, err := MintAccessToken(cfg, now, TokenPayload{
		UserID: 7,
		Email:  "ly@example.com",
		Role:   enums.UserRoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", claims.UserID)
	}
	if claims.Email != "ly@example.com" {
		t.Fatalf("unexpected email claim %q", claims.Email)
	}
	if claims.Subject != "7" {
		t.Fatalf("expected subject 7, got %q", claims.Subject)
	}
}

func TestRefreshTokenUsesSeparateSecret(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()

	refresh, err := MintRefreshToken(cfg, now, TokenPayload{UserID: 7, Email: "ly@example.com"})
	if err != nil {
		t.Fatalf("mint refresh token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, refresh); err == nil {
		t.Fatalf("expected refresh token to fail access-secret verification")
	}
	claims, err := ParseRefreshToken(cfg, refresh)
	if err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", claims.UserID)
	}
}

func TestRefreshTokenOutlivesAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()

	access, err := MintAccessToken(cfg, now, TokenPayload{UserID: 1, Email: "a@b.c"})
	if err != nil {
		t.Fatalf("mint access: %v", err)
	}
	refresh, err := MintRefreshToken(cfg, now, TokenPayload{UserID: 1, Email: "a@b.c"})
	if err != nil {
		t.Fatalf("mint refresh: %v", err)
	}

	accessClaims, err := ParseAccessToken(cfg, access)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	refreshClaims, err := ParseRefreshToken(cfg, refresh)
	if err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
	if !refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time) {
		t.Fatalf("expected refresh expiry after access expiry")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	past := time.Now().UTC().Add(-time.Hour)

	token, err := MintAccessToken(cfg, past, TokenPayload{UserID: 3, Email: "old@b.c"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestMintRequiresUserID(t *testing.T) {
	cfg := testJWTConfig()
	if _, err := MintAccessToken(cfg, time.Now(), TokenPayload{Email: "x@y.z"}); err == nil {
		t.Fatalf("expected error without user id")
	}
}
