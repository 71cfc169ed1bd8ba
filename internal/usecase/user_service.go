package usecase

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	repo "github.com/example/user-service/internal/adapters/postgres"
	"github.com/example/user-service/internal/domain"
	pkglog "github.com/example/user-service/pkg/log"
)

// UserService covers the CRUD surface over user records. Deleting a user
// cascades into refresh token invalidation through the repository, so a
// deleted account cannot keep a live session.
type UserService interface {
	List(ctx context.Context, traceID string) ([]domain.PublicUser, error)
	Get(ctx context.Context, traceID string, id uint) (*domain.PublicUser, error)
	Update(ctx context.Context, traceID string, id uint, req UpdateUserRequest) (*domain.PublicUser, error)
	Delete(ctx context.Context, traceID string, id uint) error
}

// UpdateUserRequest carries a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	IsActive  *bool   `json:"isActive"`
}

type userService struct {
	logger pkglog.Logger
	users  repo.UserRepository
	events EventPublisher
}

func NewUserService(logger pkglog.Logger, users repo.UserRepository, events EventPublisher) UserService {
	return &userService{logger: logger, users: users, events: events}
}

func (s *userService) List(ctx context.Context, traceID string) ([]domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	projections := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		projections = append(projections, *users[i].Public())
	}
	return projections, nil
}

func (s *userService) Get(ctx context.Context, traceID string, id uint) (*domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.Public(), nil
}

func (s *userService) Update(ctx context.Context, traceID string, id uint, req UpdateUserRequest) (*domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil {
		norm := normalizeEmail(*req.Email)
		if err := validateEmail(norm); err != nil {
			return nil, err
		}
		if norm != user.Email {
			if _, err := s.users.FindByEmail(ctx, norm); err == nil {
				return nil, ErrUserAlreadyExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = norm
		}
	}
	if req.FirstName != nil {
		if err := validateName("first name", *req.FirstName); err != nil {
			return nil, err
		}
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if err := validateName("last name", *req.LastName); err != nil {
			return nil, err
		}
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Str("trace_id", traceID).Uint("user_id", user.ID).Msg("user updated")
	return user.Public(), nil
}

func (s *userService) Delete(ctx context.Context, traceID string, id uint) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if s.events != nil {
		_ = s.events.UserDeleted(ctx, id)
	}
	s.logger.Info().Str("trace_id", traceID).Uint("user_id", id).Msg("user deleted")
	return nil
}
