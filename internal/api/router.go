package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/aistudybuddy/study-buddy-api/docs"
	"github.com/aistudybuddy/study-buddy-api/internal/api/handler"
	"github.com/aistudybuddy/study-buddy-api/internal/api/middleware"
	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
	"github.com/aistudybuddy/study-buddy-api/internal/core/service"
	"github.com/aistudybuddy/study-buddy-api/internal/infrastructure/config"
	mongostore "github.com/aistudybuddy/study-buddy-api/internal/infrastructure/db/mongo"
	redisstore "github.com/aistudybuddy/study-buddy-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, completer ports.Completer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOriginList(),
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("studybuddy"))

	// --- Repositories ---
	userRepo := mongostore.NewUserRepository(db)
	statsRepo := mongostore.NewStatsRepository(db)
	chatRepo := mongostore.NewChatRepository(db)
	courseRepo := mongostore.NewCourseRepository(db)
	adminRepo := mongostore.NewAdminStatsRepository(db)
	kvStore := redisstore.NewKVStore(rdb)

	// --- Services ---
	tokenTTL := time.Duration(cfg.TokenTTLDays) * 24 * time.Hour
	authService := service.NewAuthService(userRepo, statsRepo, cfg.JWTSecret, tokenTTL, log)
	chatService := service.NewChatService(completer, chatRepo, statsRepo, log)
	courseService := service.NewCourseService(courseRepo, log)
	userStatsService := service.NewUserStatsService(statsRepo, chatRepo, log)
	adminService := service.NewAdminService(adminRepo, log)
	learningService := service.NewLearningService(kvStore, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, log)
	chatHandler := handler.NewChatHandler(chatService)
	userHandler := handler.NewUserHandler(chatService, userStatsService)
	courseHandler := handler.NewCourseHandler(courseService)
	adminHandler := handler.NewAdminHandler(adminService, chatService)
	learningHandler := handler.NewLearningHandler(learningService)

	requireAuth := middleware.Auth(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, optionalAuth)
	auth.GET("/session", authHandler.Session, optionalAuth)

	// --- Chat (guests allowed, history only for authenticated users) ---
	e.POST("/api/chat", chatHandler.Chat, optionalAuth)

	// --- Signed-in user routes ---
	user := e.Group("/api/user", requireAuth)
	user.GET("/chat-history", userHandler.ChatHistory)
	user.DELETE("/chat-history", userHandler.DeleteChatEntry)
	user.GET("/stats", userHandler.Stats)
	user.PUT("/stats", userHandler.UpdateStats)

	// --- Learning state (guest partition for anonymous callers) ---
	learning := e.Group("/api/learning", optionalAuth)
	learning.POST("/activity", learningHandler.RecordActivity)
	learning.POST("/topics", learningHandler.AddTopic)
	learning.POST("/answers", learningHandler.RecordAnswer)
	learning.GET("/dashboard", learningHandler.Dashboard)
	learning.GET("/sessions", learningHandler.ListSessions)
	learning.POST("/sessions", learningHandler.CreateSession)
	learning.POST("/sessions/:id/messages", learningHandler.AddMessage)
	learning.DELETE("/sessions/:id", learningHandler.DeleteSession)

	// --- Admin routes ---
	admin := e.Group("/api/admin", requireAuth)
	admin.GET("/courses", courseHandler.List)
	admin.POST("/courses", courseHandler.Create, adminOnly)
	admin.PUT("/courses", courseHandler.Update, adminOnly)
	admin.DELETE("/courses", courseHandler.Delete, adminOnly)
	admin.GET("/stats", adminHandler.Stats, adminOnly)
	admin.GET("/chat-history", adminHandler.ChatHistory, adminOnly)
	admin.DELETE("/chat-history", adminHandler.DeleteChatEntry, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
