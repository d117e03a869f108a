package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/ErlanBelekov/storefront-api/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password, role, images, deleted,
	verification_code, verification_code_created_at, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) db(ctx context.Context) Querier {
	return querierFrom(ctx, r.pool)
}

func (r *UserRepository) ListActive(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, false)
}

func (r *UserRepository) ListDeleted(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, true)
}

func (r *UserRepository) list(ctx context.Context, deleted bool) ([]*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE deleted = $1 ORDER BY created_at DESC`, userColumns)

	rows, err := r.db(ctx).Query(ctx, query, deleted)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetActiveByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND deleted = false`, userColumns)
	return scanUser(r.db(ctx).QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.db(ctx).QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 AND deleted = false`, userColumns)
	return scanUser(r.db(ctx).QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByVerificationCode(ctx context.Context, code string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE verification_code = $1`, userColumns)
	return scanUser(r.db(ctx).QueryRow(ctx, query, code))
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (name, email, password, role, images)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, userColumns)

	row := r.db(ctx).QueryRow(ctx, query,
		user.Name, user.Email, user.Password, user.Role, user.Images)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch repository.UpdateUserPatch) (*domain.User, error) {
	set := []string{"updated_at = NOW()"}
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Role != nil {
		add("role", *patch.Role)
	}
	if patch.Images != nil {
		add("images", patch.Images)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $%d AND deleted = false
		RETURNING %s`,
		strings.Join(set, ", "), len(args), userColumns)

	u, err := scanUser(r.db(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id string) error {
	return r.setDeleted(ctx, id, true)
}

func (r *UserRepository) Restore(ctx context.Context, id string) error {
	return r.setDeleted(ctx, id, false)
}

// setDeleted is idempotent: flagging an already-flagged row succeeds.
func (r *UserRepository) setDeleted(ctx context.Context, id string, deleted bool) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE users SET deleted = $2, updated_at = NOW() WHERE id = $1`, id, deleted)
	if err != nil {
		return fmt.Errorf("flag user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) HardDelete(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetVerificationCode(ctx context.Context, id, code string, issuedAt time.Time) error {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE users
		SET verification_code = $2, verification_code_created_at = $3, updated_at = NOW()
		WHERE id = $1`, id, code, issuedAt)
	if err != nil {
		return fmt.Errorf("set verification code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ClearVerificationCode(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE users
		SET verification_code = NULL, verification_code_created_at = NULL, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("clear verification code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ClearExpiredVerificationCodes(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE users
		SET verification_code = NULL, verification_code_created_at = NULL, updated_at = NOW()
		WHERE verification_code IS NOT NULL AND verification_code_created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("clear expired verification codes: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u             domain.User
		code          *string
		codeCreatedAt *time.Time
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Images,
		&u.Deleted, &code, &codeCreatedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if code != nil && codeCreatedAt != nil {
		u.Verification = &domain.VerificationCode{Code: *code, CreatedAt: *codeCreatedAt}
	}
	return &u, nil
}
