package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/ErlanBelekov/storefront-api/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inventoryColumns = `id, name, description, price_cents, quantity, deleted, created_at, updated_at`

type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

func (r *InventoryRepository) db(ctx context.Context) Querier {
	return querierFrom(ctx, r.pool)
}

func (r *InventoryRepository) ListActive(ctx context.Context) ([]*domain.Inventory, error) {
	return r.list(ctx, false)
}

func (r *InventoryRepository) ListDeleted(ctx context.Context) ([]*domain.Inventory, error) {
	return r.list(ctx, true)
}

func (r *InventoryRepository) list(ctx context.Context, deleted bool) ([]*domain.Inventory, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory WHERE deleted = $1 ORDER BY created_at DESC`, inventoryColumns)

	rows, err := r.db(ctx).Query(ctx, query, deleted)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var items []*domain.Inventory
	for rows.Next() {
		item, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *InventoryRepository) GetActiveByID(ctx context.Context, id string) (*domain.Inventory, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory WHERE id = $1 AND deleted = false`, inventoryColumns)
	return scanInventory(r.db(ctx).QueryRow(ctx, query, id))
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*domain.Inventory, error) {
	query := fmt.Sprintf(`SELECT %s FROM inventory WHERE id = $1`, inventoryColumns)
	return scanInventory(r.db(ctx).QueryRow(ctx, query, id))
}

func (r *InventoryRepository) Create(ctx context.Context, item *domain.Inventory) (*domain.Inventory, error) {
	query := fmt.Sprintf(`
		INSERT INTO inventory (name, description, price_cents, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, inventoryColumns)

	row := r.db(ctx).QueryRow(ctx, query,
		item.Name, item.Description, item.PriceCents, item.Quantity)
	return scanInventory(row)
}

func (r *InventoryRepository) Update(ctx context.Context, id string, patch repository.UpdateInventoryPatch) (*domain.Inventory, error) {
	set := []string{"updated_at = NOW()"}
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.PriceCents != nil {
		add("price_cents", *patch.PriceCents)
	}
	if patch.Quantity != nil {
		add("quantity", *patch.Quantity)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE inventory SET %s
		WHERE id = $%d AND deleted = false
		RETURNING %s`,
		strings.Join(set, ", "), len(args), inventoryColumns)

	return scanInventory(r.db(ctx).QueryRow(ctx, query, args...))
}

func (r *InventoryRepository) SoftDelete(ctx context.Context, id string) error {
	return r.setDeleted(ctx, id, true)
}

func (r *InventoryRepository) Restore(ctx context.Context, id string) error {
	return r.setDeleted(ctx, id, false)
}

// setDeleted is idempotent: flagging an already-flagged row succeeds.
func (r *InventoryRepository) setDeleted(ctx context.Context, id string, deleted bool) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE inventory SET deleted = $2, updated_at = NOW() WHERE id = $1`, id, deleted)
	if err != nil {
		return fmt.Errorf("flag inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInventoryNotFound
	}
	return nil
}

func (r *InventoryRepository) HardDelete(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInventoryNotFound
	}
	return nil
}

func scanInventory(row pgx.Row) (*domain.Inventory, error) {
	var item domain.Inventory
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.PriceCents,
		&item.Quantity, &item.Deleted, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("scan inventory: %w", err)
	}
	return &item, nil
}
