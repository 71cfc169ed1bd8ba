package tokenverify_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/user-service/internal/tokenverify"
	"github.com/example/user-service/internal/usecase"
)

type stubParser struct {
	claims map[string]*usecase.AccessClaims
	errs   map[string]error
}

func (s stubParser) ParseAccess(token string) (*usecase.AccessClaims, error) {
	if err, ok := s.errs[token]; ok {
		return nil, err
	}
	if claims, ok := s.claims[token]; ok {
		return claims, nil
	}
	return nil, errors.New("unexpected token")
}

func TestVerifySuccess(t *testing.T) {
	parser := stubParser{claims: map[string]*usecase.AccessClaims{
		"good": {UserID: 7, Email: "jane@example.com"},
	}}
	result, err := tokenverify.Verify(parser, "good")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.UserID != 7 || result.Email != "jane@example.com" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestVerifyEmptyToken(t *testing.T) {
	if _, err := tokenverify.Verify(stubParser{}, "  "); !errors.Is(err, tokenverify.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	parser := stubParser{errs: map[string]error{
		"old": fmt.Errorf("token invalid: %w", jwt.ErrTokenExpired),
	}}
	if _, err := tokenverify.Verify(parser, "old"); !errors.Is(err, tokenverify.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyInvalid(t *testing.T) {
	parser := stubParser{errs: map[string]error{
		"bad": errors.New("signature mismatch"),
	}}
	if _, err := tokenverify.Verify(parser, "bad"); !errors.Is(err, tokenverify.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifySubjectMissing(t *testing.T) {
	parser := stubParser{claims: map[string]*usecase.AccessClaims{
		"nosub": {Email: "jane@example.com"},
	}}
	if _, err := tokenverify.Verify(parser, "nosub"); !errors.Is(err, tokenverify.ErrSubjectMissing) {
		t.Fatalf("expected ErrSubjectMissing, got %v", err)
	}
}
