package usecase_test

import (
	"testing"
	"time"

	"github.com/example/user-service/config"
	"github.com/example/user-service/internal/usecase"
)

func newTestSigner(t *testing.T, secret string) usecase.JWTSigner {
	t.Helper()
	signer, err := usecase.NewJWTSigner(&config.Config{
		JWTSecret:  secret,
		JWTIssuer:  "user-service",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return signer
}

func TestSignerRequiresSecret(t *testing.T) {
	if _, err := usecase.NewJWTSigner(&config.Config{}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	signer := newTestSigner(t, "secret")
	tok, err := signer.SignAccessToken(7, "jane@example.com")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := signer.ParseAccess(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "jane@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "7" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	signer := newTestSigner(t, "secret")
	tok, err := signer.SignRefreshToken(7)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := signer.ParseRefresh(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("refresh token missing jti")
	}
}

// Every refresh token carries a fresh jti, so two tokens for the same user
// are never byte-equal and rotation always produces a new credential.
func TestRefreshTokensAreUnique(t *testing.T) {
	signer := newTestSigner(t, "secret")
	a, _ := signer.SignRefreshToken(7)
	b, _ := signer.SignRefreshToken(7)
	if a == b {
		t.Fatalf("expected distinct refresh tokens")
	}
}

func TestTokenTypeConfusionRejected(t *testing.T) {
	signer := newTestSigner(t, "secret")
	access, _ := signer.SignAccessToken(7, "jane@example.com")
	refresh, _ := signer.SignRefreshToken(7)

	if _, err := signer.ParseAccess(refresh); err == nil {
		t.Fatalf("refresh token accepted as access token")
	}
	if _, err := signer.ParseRefresh(access); err == nil {
		t.Fatalf("access token accepted as refresh token")
	}
}

func TestForeignSignatureRejected(t *testing.T) {
	signer := newTestSigner(t, "secret")
	other := newTestSigner(t, "other-secret")

	tok, _ := other.SignAccessToken(7, "jane@example.com")
	if _, err := signer.ParseAccess(tok); err == nil {
		t.Fatalf("token signed with another key was accepted")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	signer, err := usecase.NewJWTSigner(&config.Config{
		JWTSecret:  "secret",
		JWTIssuer:  "user-service",
		AccessTTL:  -2 * time.Minute,
		RefreshTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	tok, _ := signer.SignAccessToken(7, "jane@example.com")
	if _, err := signer.ParseAccess(tok); err == nil {
		t.Fatalf("expired token accepted")
	}
}
