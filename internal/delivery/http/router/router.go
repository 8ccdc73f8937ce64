// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"trolley/internal/delivery/http/middleware"
	"trolley/internal/delivery/http/router/handler"
	"trolley/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// RouterParams holds everything the router wires into echo, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler      *handler.UserHandler
	CartHandler      *handler.CartHandler
	MenuHandler      *handler.MenuHandler
	AccessMiddleware *middleware.AccessMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler      *handler.UserHandler
	cartHandler      *handler.CartHandler
	menuHandler      *handler.MenuHandler
	accessMiddleware *middleware.AccessMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:      params.UserHandler,
		cartHandler:      params.CartHandler,
		menuHandler:      params.MenuHandler,
		accessMiddleware: params.AccessMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Identity resolution runs on every route; the per-group guards decide access.
	e.Use(r.accessMiddleware.Authenticate)

	// Public storefront menu
	e.GET("/menu", r.menuHandler.ListMenu)

	// Account and session routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Cart routes: any authenticated role may manage its own cart
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.accessMiddleware.Guard())
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PUT("/items/:itemID", r.cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:itemID", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
		cartGroup.PUT("/delivery-type", r.cartHandler.SetDeliveryType)
		cartGroup.POST("/promo-code", r.cartHandler.ApplyPromoCode)
		cartGroup.DELETE("/promo-code", r.cartHandler.RemovePromoCode)
	}

	// Back-office routes require the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.accessMiddleware.Guard(entity.RoleAdmin))
	{
		adminGroup.POST("/menu/dishes", r.menuHandler.CreateDish)
		adminGroup.GET("/carts/:userID", r.cartHandler.GetUserCart)
	}
}
