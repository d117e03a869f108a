package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/ErlanBelekov/storefront-api/internal/repository"
	"github.com/ErlanBelekov/storefront-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type inventoryUsecaser interface {
	Create(ctx context.Context, input usecase.CreateInventoryInput) (*domain.Inventory, error)
	List(ctx context.Context) ([]*domain.Inventory, error)
	ListDeleted(ctx context.Context) ([]*domain.Inventory, error)
	GetByID(ctx context.Context, id string) (*domain.Inventory, error)
	Update(ctx context.Context, id string, patch repository.UpdateInventoryPatch) (*domain.Inventory, error)
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
}

type InventoryHandler struct {
	inventoryUsecase inventoryUsecaser
	logger           *slog.Logger
}

func NewInventoryHandler(inventoryUsecase inventoryUsecaser, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryUsecase: inventoryUsecase,
		logger:           logger.With("component", "inventory_handler"),
	}
}

type inventoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int       `json:"quantity"`
	Deleted     bool      `json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toInventoryResponse(item *domain.Inventory) inventoryResponse {
	return inventoryResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		PriceCents:  item.PriceCents,
		Quantity:    item.Quantity,
		Deleted:     item.Deleted,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toInventoryResponses(items []*domain.Inventory) []inventoryResponse {
	out := make([]inventoryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toInventoryResponse(item))
	}
	return out
}

type createInventoryRequest struct {
	Name        string `json:"name"        binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" binding:"min=0"`
	Quantity    int    `json:"quantity"    binding:"min=0"`
}

// POST /inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req createInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	item, err := h.inventoryUsecase.Create(c.Request.Context(), usecase.CreateInventoryInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, "Inventory item created", toInventoryResponse(item))
}

// GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.inventoryUsecase.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Inventory fetched", toInventoryResponses(items))
}

// GET /inventory/deleted
func (h *InventoryHandler) ListDeleted(c *gin.Context) {
	items, err := h.inventoryUsecase.ListDeleted(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Deleted inventory fetched", toInventoryResponses(items))
}

// GET /inventory/:id
func (h *InventoryHandler) GetByID(c *gin.Context) {
	item, err := h.inventoryUsecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Inventory item fetched", toInventoryResponse(item))
}

type updateInventoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents" binding:"omitempty,min=0"`
	Quantity    *int    `json:"quantity"    binding:"omitempty,min=0"`
}

// PUT /inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	var req updateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	item, err := h.inventoryUsecase.Update(c.Request.Context(), c.Param("id"), repository.UpdateInventoryPatch{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Inventory item updated", toInventoryResponse(item))
}

// DELETE /inventory/:id
func (h *InventoryHandler) SoftDelete(c *gin.Context) {
	if err := h.inventoryUsecase.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Inventory item deleted", nil)
}

// POST /inventory/:id/restore
func (h *InventoryHandler) Restore(c *gin.Context) {
	if err := h.inventoryUsecase.Restore(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Inventory item restored", nil)
}

// DELETE /inventory/:id/force
func (h *InventoryHandler) ForceDelete(c *gin.Context) {
	if err := h.inventoryUsecase.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, "Inventory item permanently deleted", nil)
}
