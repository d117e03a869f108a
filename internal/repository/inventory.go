package repository

import (
	"context"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
)

// UpdateInventoryPatch is a partial update. Nil fields are left untouched.
type UpdateInventoryPatch struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Quantity    *int
}

type InventoryRepository interface {
	ListActive(ctx context.Context) ([]*domain.Inventory, error)
	ListDeleted(ctx context.Context) ([]*domain.Inventory, error)
	GetActiveByID(ctx context.Context, id string) (*domain.Inventory, error)
	GetByID(ctx context.Context, id string) (*domain.Inventory, error)

	Create(ctx context.Context, item *domain.Inventory) (*domain.Inventory, error)
	Update(ctx context.Context, id string, patch UpdateInventoryPatch) (*domain.Inventory, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}
