package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/storefront-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/storefront-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	inventoryHandler *handler.InventoryHandler,
	sessions middleware.AuthChecker,
	jwtKey []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(jwtKey, sessions)

	users := r.Group("/users")
	// Public: registration, login and the password-reset flow.
	users.POST("", userHandler.Create)
	users.POST("/login", authHandler.Login)
	users.POST("/otp", authHandler.RequestOTP)
	users.POST("/reset-password", authHandler.ResetPassword)

	protected := users.Group("", authMW)
	protected.GET("", userHandler.List)
	protected.GET("/deleted", userHandler.ListDeleted)
	protected.GET("/:id", userHandler.GetByID)
	protected.PUT("/:id", userHandler.Update)
	protected.DELETE("/:id", userHandler.SoftDelete)
	protected.POST("/:id/restore", userHandler.Restore)
	protected.DELETE("/:id/force", userHandler.ForceDelete)
	protected.POST("/logout", authHandler.Logout)
	protected.PATCH("/:id/password", authHandler.ChangePassword)

	inventory := r.Group("/inventory", authMW)
	inventory.POST("", inventoryHandler.Create)
	inventory.GET("", inventoryHandler.List)
	inventory.GET("/deleted", inventoryHandler.ListDeleted)
	inventory.GET("/:id", inventoryHandler.GetByID)
	inventory.PUT("/:id", inventoryHandler.Update)
	inventory.DELETE("/:id", inventoryHandler.SoftDelete)
	inventory.POST("/:id/restore", inventoryHandler.Restore)
	inventory.DELETE("/:id/force", inventoryHandler.ForceDelete)

	return r
}
