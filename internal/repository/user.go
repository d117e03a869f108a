package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
)

// UpdateUserPatch is a partial update. Nil fields are left untouched.
// A non-nil Images slice replaces the stored references wholesale.
type UpdateUserPatch struct {
	Name   *string
	Email  *string
	Role   *string
	Images []domain.Image
}

type UserRepository interface {
	ListActive(ctx context.Context) ([]*domain.User, error)
	ListDeleted(ctx context.Context) ([]*domain.User, error)
	GetActiveByID(ctx context.Context, id string) (*domain.User, error)
	// GetByID finds a user regardless of the deleted flag, so soft-deleted
	// records stay addressable for restore and force-delete.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByVerificationCode(ctx context.Context, code string) (*domain.User, error)

	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, patch UpdateUserPatch) (*domain.User, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error

	SetPassword(ctx context.Context, id, passwordHash string) error
	SetVerificationCode(ctx context.Context, id, code string, issuedAt time.Time) error
	ClearVerificationCode(ctx context.Context, id string) error
	ClearExpiredVerificationCodes(ctx context.Context, cutoff time.Time) (int, error)
}
