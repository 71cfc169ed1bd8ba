package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/example/user-service/config"
	repo "github.com/example/user-service/internal/adapters/postgres"
	"github.com/example/user-service/internal/domain"
	pkglog "github.com/example/user-service/pkg/log"
)

// Service is the session manager. It owns the whole credential lifecycle:
// registration, login, rotation-on-use refresh, logout and verification.
// It is the only component that mutates refresh token rows.
type Service interface {
	Register(ctx context.Context, traceID string, req RegisterRequest) (*domain.PublicUser, error)
	Login(ctx context.Context, traceID, email, password string) (*domain.PublicUser, *TokenPair, error)
	Refresh(ctx context.Context, traceID, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, traceID, refreshToken string) error
	Verify(ctx context.Context, traceID, accessToken string) (*domain.PublicUser, error)
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type authService struct {
	cfg     *config.Config
	logger  pkglog.Logger
	users   repo.UserRepository
	refresh repo.RefreshTokenRepository
	events  EventPublisher
	signer  JWTSigner
}

func NewAuthService(cfg *config.Config, logger pkglog.Logger, users repo.UserRepository, refresh repo.RefreshTokenRepository, events EventPublisher, signer JWTSigner) Service {
	return &authService{cfg: cfg, logger: logger, users: users, refresh: refresh, events: events, signer: signer}
}

func (s *authService) Register(ctx context.Context, traceID string, req RegisterRequest) (*domain.PublicUser, error) {
	if err := validateName("first name", req.FirstName); err != nil {
		return nil, err
	}
	if err := validateName("last name", req.LastName); err != nil {
		return nil, err
	}
	norm := normalizeEmail(req.Email)
	if err := validateEmail(norm); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, norm); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        norm,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if s.events != nil {
		_ = s.events.UserCreated(ctx, user.Public())
	}

	s.logger.Info().Str("trace_id", traceID).Uint("user_id", user.ID).Msg("user registered")
	return user.Public(), nil
}

// Login verifies credentials and issues a fresh token pair. Unknown email
// and wrong password fail identically so the endpoint cannot be used to
// enumerate accounts.
func (s *authService) Login(ctx context.Context, traceID, email, password string) (*domain.PublicUser, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Uint("user_id", user.ID).Msg("login")
	return user.Public(), pair, nil
}

// Refresh rotates the presented token. The conditional invalidation runs
// first, so an accepted token is consumed exactly once even under
// concurrent presentation: the loser of the race no longer finds a valid
// row and fails like any replayed token.
func (s *authService) Refresh(ctx context.Context, traceID, refreshToken string) (*TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, ErrRefreshTokenMissing
	}

	row, err := s.refresh.InvalidateIfValid(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	claims, err := s.signer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	// The decoded subject must match the row owner. A token that satisfies
	// the storage lookup but decodes to another user is never accepted.
	if claims.UserID != row.UserID {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Uint("user_id", user.ID).Msg("token refreshed")
	return pair, nil
}

// Logout invalidates the presented refresh token, if any. It is idempotent
// and never fails toward the caller; a store fault is logged and swallowed.
func (s *authService) Logout(ctx context.Context, traceID, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	if err := s.refresh.Invalidate(ctx, refreshToken); err != nil {
		s.logger.Warn().Str("trace_id", traceID).Err(err).Msg("logout: failed to invalidate refresh token")
	}
	return nil
}

// Verify checks the access token and returns the owning user's projection.
// It never refreshes on its own; refresh is the caller's responsibility.
func (s *authService) Verify(ctx context.Context, traceID, accessToken string) (*domain.PublicUser, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, ErrNoAccessToken
	}
	claims, err := s.signer.ParseAccess(accessToken)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Public(), nil
}

func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	access, err := s.signer.SignAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signer.SignRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.refresh.Create(ctx, &domain.RefreshToken{
		UserID:  user.ID,
		Token:   refresh,
		IsValid: true,
	}); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
