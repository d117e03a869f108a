package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/ErlanBelekov/storefront-api/internal/repository"
	"github.com/ErlanBelekov/storefront-api/internal/usecase"
)

// memInventoryRepo is an in-memory InventoryRepository so the lifecycle tests
// observe real create/list/delete/restore interplay instead of canned returns.
type memInventoryRepo struct {
	nextID int
	items  map[string]*domain.Inventory
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{items: make(map[string]*domain.Inventory)}
}

func (r *memInventoryRepo) list(deleted bool) []*domain.Inventory {
	var out []*domain.Inventory
	for _, item := range r.items {
		if item.Deleted == deleted {
			copied := *item
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memInventoryRepo) ListActive(_ context.Context) ([]*domain.Inventory, error) {
	return r.list(false), nil
}

func (r *memInventoryRepo) ListDeleted(_ context.Context) ([]*domain.Inventory, error) {
	return r.list(true), nil
}

func (r *memInventoryRepo) GetActiveByID(_ context.Context, id string) (*domain.Inventory, error) {
	item, ok := r.items[id]
	if !ok || item.Deleted {
		return nil, domain.ErrInventoryNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *memInventoryRepo) GetByID(_ context.Context, id string) (*domain.Inventory, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrInventoryNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *memInventoryRepo) Create(_ context.Context, item *domain.Inventory) (*domain.Inventory, error) {
	r.nextID++
	copied := *item
	copied.ID = fmt.Sprintf("item-%d", r.nextID)
	r.items[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (r *memInventoryRepo) Update(_ context.Context, id string, patch repository.UpdateInventoryPatch) (*domain.Inventory, error) {
	item, ok := r.items[id]
	if !ok || item.Deleted {
		return nil, domain.ErrInventoryNotFound
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.PriceCents != nil {
		item.PriceCents = *patch.PriceCents
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	copied := *item
	return &copied, nil
}

func (r *memInventoryRepo) SoftDelete(_ context.Context, id string) error {
	item, ok := r.items[id]
	if !ok {
		return domain.ErrInventoryNotFound
	}
	item.Deleted = true
	return nil
}

func (r *memInventoryRepo) Restore(_ context.Context, id string) error {
	item, ok := r.items[id]
	if !ok {
		return domain.ErrInventoryNotFound
	}
	item.Deleted = false
	return nil
}

func (r *memInventoryRepo) HardDelete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrInventoryNotFound
	}
	delete(r.items, id)
	return nil
}

func createItem(t *testing.T, uc *usecase.InventoryUsecase, name string) *domain.Inventory {
	t.Helper()
	item, err := uc.Create(context.Background(), usecase.CreateInventoryInput{
		Name:       name,
		PriceCents: 1000,
		Quantity:   5,
	})
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return item
}

func TestInventory_SoftDeleteMovesBetweenLists(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInventoryUsecase(newMemInventoryRepo())

	kept := createItem(t, uc, "Espresso Cup")
	dropped := createItem(t, uc, "Old Kettle")

	if err := uc.SoftDelete(ctx, dropped.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	active, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].ID != kept.ID {
		t.Errorf("active list = %v, want only %s", active, kept.ID)
	}

	deleted, err := uc.ListDeleted(ctx)
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	if len(deleted) != 1 || deleted[0].ID != dropped.ID {
		t.Errorf("deleted list = %v, want only %s", deleted, dropped.ID)
	}

	if _, err := uc.GetByID(ctx, dropped.ID); !errors.Is(err, domain.ErrInventoryNotFound) {
		t.Errorf("GetByID on a soft-deleted item: want ErrInventoryNotFound, got %v", err)
	}
}

func TestInventory_RestoreReturnsItemToActiveList(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInventoryUsecase(newMemInventoryRepo())

	item := createItem(t, uc, "Burr Grinder")
	if err := uc.SoftDelete(ctx, item.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if err := uc.Restore(ctx, item.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}

	got, err := uc.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("get after restore: %v", err)
	}
	if got.Deleted {
		t.Error("item still flagged deleted after restore")
	}

	deleted, err := uc.ListDeleted(ctx)
	if err != nil {
		t.Fatalf("list deleted: %v", err)
	}
	if len(deleted) != 0 {
		t.Errorf("deleted list = %v, want empty", deleted)
	}
}

func TestInventory_HardDeleteRemovesPermanently(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInventoryUsecase(newMemInventoryRepo())

	item := createItem(t, uc, "Filter Papers")
	if err := uc.HardDelete(ctx, item.ID); err != nil {
		t.Fatalf("hard delete: %v", err)
	}

	if _, err := uc.GetByID(ctx, item.ID); !errors.Is(err, domain.ErrInventoryNotFound) {
		t.Errorf("want ErrInventoryNotFound, got %v", err)
	}
	if err := uc.Restore(ctx, item.ID); !errors.Is(err, domain.ErrInventoryNotFound) {
		t.Errorf("restore after hard delete: want ErrInventoryNotFound, got %v", err)
	}
}

func TestInventory_UpdateAppliesPartialPatch(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInventoryUsecase(newMemInventoryRepo())

	item := createItem(t, uc, "Digital Scale")

	price := int64(4200)
	updated, err := uc.Update(ctx, item.ID, repository.UpdateInventoryPatch{PriceCents: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PriceCents != 4200 {
		t.Errorf("price = %d, want 4200", updated.PriceCents)
	}
	if updated.Name != "Digital Scale" {
		t.Errorf("name changed to %q on a price-only patch", updated.Name)
	}
	if updated.Quantity != 5 {
		t.Errorf("quantity changed to %d on a price-only patch", updated.Quantity)
	}
}

func TestInventory_UnknownID_ReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewInventoryUsecase(newMemInventoryRepo())

	if _, err := uc.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrInventoryNotFound) {
		t.Errorf("get: want ErrInventoryNotFound, got %v", err)
	}
	if err := uc.SoftDelete(ctx, "missing"); !errors.Is(err, domain.ErrInventoryNotFound) {
		t.Errorf("soft delete: want ErrInventoryNotFound, got %v", err)
	}
	if _, err := uc.Update(ctx, "missing", repository.UpdateInventoryPatch{}); !errors.Is(err, domain.ErrInventoryNotFound) {
		t.Errorf("update: want ErrInventoryNotFound, got %v", err)
	}
}
