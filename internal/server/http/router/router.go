package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/cartcloud/backend/internal/domain/model"
	"github.com/cartcloud/backend/internal/server/http/dto"
	"github.com/cartcloud/backend/internal/server/http/handlers"
	"github.com/cartcloud/backend/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware. Cart, wishlist
// and order routes are mounted without auth for client compatibility;
// catalog and account routes sit behind the bearer-token middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	userHandler := handlers.NewUserHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	wishlistHandler := handlers.NewWishlistHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	protect := middleware.Protect(facade)
	vendorOrAdmin := middleware.Authorize(model.RoleVendor, model.RoleAdmin)
	adminOnly := middleware.Authorize(model.RoleAdmin)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "CartCloud API is running"})
	})

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	users := engine.Group("/users")
	users.POST("", userHandler.Create)
	users.GET("", protect, adminOnly, userHandler.List)
	users.GET("/:id", protect, userHandler.Get)
	users.PUT("/:id", protect, userHandler.Update)
	users.DELETE("/:id", protect, adminOnly, userHandler.Delete)
	users.PUT("/:id/password", protect, userHandler.ChangePassword)
	users.GET("/:id/account-balance", protect, userHandler.AccountBalance)

	products := engine.Group("/products")
	products.Use(protect)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", vendorOrAdmin, productHandler.Create)
	products.PUT("/:id", vendorOrAdmin, productHandler.Update)
	products.DELETE("/:id", vendorOrAdmin, productHandler.Delete)

	carts := engine.Group("/carts")
	carts.GET("/:userId", cartHandler.Get)
	carts.POST("/:userId", cartHandler.Add)
	carts.PUT("/:userId", cartHandler.UpdateItem)
	carts.DELETE("/:userId", cartHandler.Clear)
	carts.DELETE("/:userId/:productId", cartHandler.RemoveItem)

	wishlists := engine.Group("/wishlists")
	wishlists.GET("/:userId", wishlistHandler.Get)
	wishlists.POST("/:userId", wishlistHandler.Add)
	wishlists.DELETE("/:userId/:productId", wishlistHandler.Remove)

	orders := engine.Group("/orders")
	orders.GET("/user/:userId", orderHandler.ListByUser)
	orders.POST("/user/:userId", orderHandler.Checkout)
	orders.GET("/analytics/:vendorId", orderHandler.Analytics)
	orders.GET("/:orderId", orderHandler.Get)
	orders.PATCH("/:orderId/cancel", orderHandler.Cancel)
	orders.PATCH("/:orderId/deliver", orderHandler.Deliver)

	return engine
}
