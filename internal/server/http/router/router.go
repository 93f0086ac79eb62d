package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/bitenow/bitenow/internal/config"
	"github.com/bitenow/bitenow/internal/server/http/handlers"
	"github.com/bitenow/bitenow/internal/server/http/middleware"
	"github.com/bitenow/bitenow/internal/server/ws"
)

// Setup configures gin router with handlers and middleware. The websocket
// path skips response compression since the upgraded connection must not be
// wrapped.
func Setup(facade handlers.OrderingFacade, hub *ws.Hub, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws"})))

	menuHandler := handlers.NewMenuHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade, cfg.PaymentWebhookSecret, logger)

	api := engine.Group("/api")
	api.GET("/menu", menuHandler.List)
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/checkout-session", paymentHandler.CreateSession)
	api.POST("/payment/webhook", paymentHandler.Webhook)
	api.POST("/admin/login", adminHandler.Login)
	api.POST("/admin/logout", adminHandler.Logout)

	admin := api.Group("")
	admin.Use(middleware.AdminRequired(facade))
	admin.GET("/orders", orderHandler.List)
	admin.PUT("/orders/:id", orderHandler.Update)

	engine.GET("/ws", hub.Handler())

	return engine
}
