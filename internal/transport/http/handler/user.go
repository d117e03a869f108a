package handler

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/ErlanBelekov/storefront-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	Create(ctx context.Context, input usecase.CreateUserInput, files []domain.Upload) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListDeleted(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input usecase.UpdateUserInput, files []domain.Upload) (*domain.User, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	ForceDelete(ctx context.Context, id string) error
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger.With("component", "user_handler"),
	}
}

type userResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	Images    []domain.Image `json:"images"`
	Deleted   bool           `json:"deleted"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Images:    u.Images,
		Deleted:   u.Deleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type createUserForm struct {
	Name     string `form:"name"     binding:"required"`
	Email    string `form:"email"    binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
	Role     string `form:"role"     binding:"omitempty,oneof=customer admin"`
}

// POST /users (multipart, image field "images")
func (h *UserHandler) Create(c *gin.Context) {
	var form createUserForm
	if err := c.ShouldBind(&form); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	files, err := readUploads(c)
	if err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, err := h.userUsecase.Create(c.Request.Context(), usecase.CreateUserInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
	}, files)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, "User created", toUserResponse(user))
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUsecase.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Users fetched", toUserResponses(users))
}

// GET /users/deleted
func (h *UserHandler) ListDeleted(c *gin.Context) {
	users, err := h.userUsecase.ListDeleted(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Deleted users fetched", toUserResponses(users))
}

// GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userUsecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "User fetched", toUserResponse(user))
}

// PUT /users/:id (multipart; zero new files keeps stored images)
func (h *UserHandler) Update(c *gin.Context) {
	var input usecase.UpdateUserInput
	if v, ok := c.GetPostForm("name"); ok {
		input.Name = &v
	}
	if v, ok := c.GetPostForm("email"); ok {
		input.Email = &v
	}
	if v, ok := c.GetPostForm("role"); ok {
		input.Role = &v
	}

	files, err := readUploads(c)
	if err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	user, err := h.userUsecase.Update(c.Request.Context(), c.Param("id"), input, files)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "User updated", toUserResponse(user))
}

// DELETE /users/:id
func (h *UserHandler) SoftDelete(c *gin.Context) {
	if err := h.userUsecase.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "User deleted", nil)
}

// POST /users/:id/restore
func (h *UserHandler) Restore(c *gin.Context) {
	if err := h.userUsecase.Restore(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "User restored", nil)
}

// DELETE /users/:id/force
func (h *UserHandler) ForceDelete(c *gin.Context) {
	if err := h.userUsecase.ForceDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "User permanently deleted", nil)
}

// readUploads reads every file under the "images" multipart field into
// memory. A non-multipart request simply yields zero files.
func readUploads(c *gin.Context) ([]domain.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	var uploads []domain.Upload
	for _, fh := range form.File["images"] {
		upload, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func readUpload(fh *multipart.FileHeader) (domain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Upload{}, err
	}

	return domain.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
