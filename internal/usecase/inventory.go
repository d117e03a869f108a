package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/ErlanBelekov/storefront-api/internal/repository"
)

type InventoryUsecase struct {
	repo repository.InventoryRepository
}

func NewInventoryUsecase(repo repository.InventoryRepository) *InventoryUsecase {
	return &InventoryUsecase{repo: repo}
}

type CreateInventoryInput struct {
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
}

func (u *InventoryUsecase) Create(ctx context.Context, input CreateInventoryInput) (*domain.Inventory, error) {
	created, err := u.repo.Create(ctx, &domain.Inventory{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Quantity:    input.Quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("create inventory: %w", err)
	}
	return created, nil
}

func (u *InventoryUsecase) List(ctx context.Context) ([]*domain.Inventory, error) {
	items, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

func (u *InventoryUsecase) ListDeleted(ctx context.Context) ([]*domain.Inventory, error) {
	items, err := u.repo.ListDeleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deleted inventory: %w", err)
	}
	return items, nil
}

func (u *InventoryUsecase) GetByID(ctx context.Context, id string) (*domain.Inventory, error) {
	item, err := u.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return item, nil
}

func (u *InventoryUsecase) Update(ctx context.Context, id string, patch repository.UpdateInventoryPatch) (*domain.Inventory, error) {
	item, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update inventory: %w", err)
	}
	return item, nil
}

func (u *InventoryUsecase) SoftDelete(ctx context.Context, id string) error {
	if err := u.repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("soft delete inventory: %w", err)
	}
	return nil
}

func (u *InventoryUsecase) Restore(ctx context.Context, id string) error {
	if err := u.repo.Restore(ctx, id); err != nil {
		return fmt.Errorf("restore inventory: %w", err)
	}
	return nil
}

func (u *InventoryUsecase) HardDelete(ctx context.Context, id string) error {
	if err := u.repo.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("hard delete inventory: %w", err)
	}
	return nil
}
