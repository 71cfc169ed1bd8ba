package tokenverify

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/user-service/internal/usecase"
)

var (
	ErrInvalidToken   = errors.New("invalid_token")
	ErrTokenExpired   = errors.New("token_expired")
	ErrSubjectMissing = errors.New("subject_missing")
)

type Parser interface {
	ParseAccess(token string) (*usecase.AccessClaims, error)
}

type Result struct {
	UserID uint
	Email  string
}

// Verify validates an access token stateless (signature, expiry and claim
// shape only) and returns the identity it carries. Callers that need to know
// the user still exists must look it up themselves.
func Verify(parser Parser, token string) (*Result, error) {
	if parser == nil || strings.TrimSpace(token) == "" {
		return nil, ErrInvalidToken
	}
	claims, err := parser.ParseAccess(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, ErrSubjectMissing
	}
	return &Result{UserID: claims.UserID, Email: claims.Email}, nil
}
