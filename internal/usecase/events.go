package usecase

import (
	"context"

	"github.com/example/user-service/internal/domain"
)

// EventPublisher notifies sibling services of user lifecycle changes.
// Publishing is best-effort: a lost event never fails the operation.
type EventPublisher interface {
	UserCreated(ctx context.Context, user *domain.PublicUser) error
	UserDeleted(ctx context.Context, id uint) error
}
