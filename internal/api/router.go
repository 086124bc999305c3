package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/pairchat/chat-service/docs"
	"github.com/pairchat/chat-service/internal/api/handler"
	"github.com/pairchat/chat-service/internal/api/middleware"
	"github.com/pairchat/chat-service/internal/core/ports"
	"github.com/pairchat/chat-service/internal/core/service"
	mongodb "github.com/pairchat/chat-service/internal/infrastructure/db/mongo"
	redisdb "github.com/pairchat/chat-service/internal/infrastructure/db/redis"
)

// Deps carries the infrastructure the router wires into repositories,
// services, and handlers.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Sessions  ports.SessionStore
	Notifier  ports.ChangeNotifier
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pairchat"))

	// --- Dependencies ---
	directory := mongodb.NewDirectoryRepository(deps.DB)
	messages := mongodb.NewMessageRepository(deps.DB)
	feed := redisdb.NewFeed(deps.Redis)

	presenceService := service.NewPresenceService(directory, feed, deps.Notifier, deps.Log)
	authService := service.NewAuthService(directory, deps.Sessions, presenceService, deps.JWTSecret, 24*time.Hour, deps.Log)
	pairingService := service.NewPairingService(directory, deps.Sessions, deps.Log)
	chatService := service.NewChatService(messages, feed, deps.Notifier, deps.Log)

	attach := ports.RoomAttachmentFactory(func() ports.RoomAttachment {
		return service.NewRoomSession(chatService, presenceService, deps.Sessions, deps.Log)
	})

	authHandler := handler.NewAuthHandler(authService)
	pairHandler := handler.NewPairHandler(pairingService)
	messageHandler := handler.NewMessageHandler(chatService)
	presenceHandler := handler.NewPresenceHandler(presenceService)
	wsHandler := handler.NewWSHandler(attach, chatService, presenceService, deps.Log)

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/pair", pairHandler.Pair)
	v1.PUT("/profile/name", authHandler.UpdateName)
	v1.POST("/presence", presenceHandler.Set)
	v1.GET("/presence/:userID", presenceHandler.Get)

	// Room routes require the caller's passcode to be part of the room id.
	rooms := v1.Group("/rooms/:roomID", middleware.RoomGuard())
	rooms.POST("/messages", messageHandler.Send)
	rooms.GET("/messages", messageHandler.List)
	rooms.GET("/ws", wsHandler.Serve)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
