package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/ErlanBelekov/storefront-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ImageStore is the external object store holding profile images.
type ImageStore interface {
	Upload(ctx context.Context, files []domain.Upload) ([]domain.Image, error)
	Delete(ctx context.Context, publicIDs []string) error
}

type UserUsecase struct {
	users  repository.UserRepository
	txm    repository.TxManager
	images ImageStore
	logger *slog.Logger
}

func NewUserUsecase(users repository.UserRepository, txm repository.TxManager, images ImageStore, logger *slog.Logger) *UserUsecase {
	return &UserUsecase{
		users:  users,
		txm:    txm,
		images: images,
		logger: logger.With("component", "user_usecase"),
	}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Create registers a user. At least one image is required; the upload must
// succeed before the record is written. If the insert then fails, the
// just-uploaded objects are deleted best-effort so they do not leak.
func (u *UserUsecase) Create(ctx context.Context, input CreateUserInput, files []domain.Upload) (*domain.User, error) {
	if len(files) == 0 {
		return nil, domain.ErrImageRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCustomer
	}

	refs, err := u.images.Upload(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("upload images: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Role:     role,
		Images:   refs,
	})
	if err != nil {
		u.cleanupImages(ctx, refs)
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (u *UserUsecase) List(ctx context.Context) ([]*domain.User, error) {
	users, err := u.users.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) ListDeleted(ctx context.Context) ([]*domain.User, error) {
	users, err := u.users.ListDeleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("list deleted users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.users.GetActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

// Update applies a partial update. New files are uploaded first and appended
// to the existing references inside one transaction; with zero new files the
// stored references are left untouched.
func (u *UserUsecase) Update(ctx context.Context, id string, input UpdateUserInput, files []domain.Upload) (*domain.User, error) {
	patch := repository.UpdateUserPatch{
		Name:  input.Name,
		Email: input.Email,
		Role:  input.Role,
	}

	var refs []domain.Image
	if len(files) > 0 {
		var err error
		refs, err = u.images.Upload(ctx, files)
		if err != nil {
			return nil, fmt.Errorf("upload images: %w", err)
		}
	}

	var updated *domain.User
	err := u.txm.WithinTx(ctx, func(ctx context.Context) error {
		if refs != nil {
			current, err := u.users.GetActiveByID(ctx, id)
			if err != nil {
				return fmt.Errorf("get user: %w", err)
			}
			patch.Images = append(current.Images, refs...)
		}

		var err error
		updated, err = u.users.Update(ctx, id, patch)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		u.cleanupImages(ctx, refs)
		return nil, err
	}
	return updated, nil
}

func (u *UserUsecase) SoftDelete(ctx context.Context, id string) error {
	if err := u.users.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

func (u *UserUsecase) Restore(ctx context.Context, id string) error {
	if err := u.users.Restore(ctx, id); err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	return nil
}

// ForceDelete permanently removes the record and its stored images. The
// image store delete must succeed before the row is dropped.
func (u *UserUsecase) ForceDelete(ctx context.Context, id string) error {
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if len(user.Images) > 0 {
		if err := u.images.Delete(ctx, publicIDs(user.Images)); err != nil {
			return fmt.Errorf("delete images: %w", err)
		}
	}

	if err := u.users.HardDelete(ctx, id); err != nil {
		return fmt.Errorf("hard delete user: %w", err)
	}
	return nil
}

// cleanupImages best-effort deletes refs after a failed record write.
// Failures are logged, never propagated: the request already failed.
func (u *UserUsecase) cleanupImages(ctx context.Context, refs []domain.Image) {
	if len(refs) == 0 {
		return
	}
	if err := u.images.Delete(ctx, publicIDs(refs)); err != nil {
		u.logger.Error("orphaned image cleanup failed", "count", len(refs), "error", err)
	}
}

func publicIDs(images []domain.Image) []string {
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.PublicID)
	}
	return ids
}
