// @title QuizForge API
// @version 1.0
// @description Turns LLM text replies into validated, quality-scored quizzes.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizforge/internal/adapter"
	"quizforge/internal/adapter/quizgen"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/repository"
	"quizforge/internal/service"

	_ "quizforge/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with its outcome and duration.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM client
	generator, err := quizgen.NewOllamaTextGenerator(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create text generator", zap.Error(err))
	}

	// Database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	quizRepository := repository.NewQuizDatabaseAdapter(db)
	userRepository := repository.NewUserDatabaseAdapter(db)

	// Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	appLogger.Info("Connected to Redis", zap.String("address", cfg.Redis.Address))

	// Services
	genService := service.NewGenerationService(generator, cfg.Validation, quizRepository, cacheAdapter)
	quizService := service.NewQuizService(quizRepository, cacheAdapter, cfg.Validation)
	authService := service.NewAuthService(cfg.Auth, userRepository)

	// Handlers
	quizHandler := handler.NewQuizHandler(quizService, genService)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	quizGroup := apiGroup.Group("/quizzes")
	quizGroup.Post("/generate", middleware.Protected(authService), quizHandler.GenerateQuiz)
	quizGroup.Post("/improve", middleware.Protected(authService), quizHandler.ImproveQuestions)
	quizGroup.Post("/validate", quizHandler.ValidateQuiz)
	quizGroup.Post("/", middleware.Protected(authService), quizHandler.CreateQuiz)
	quizGroup.Get("/", middleware.Protected(authService), quizHandler.ListQuizzes)
	quizGroup.Get("/:id", middleware.OptionalAuth(authService), quizHandler.GetQuiz)
	quizGroup.Patch("/:id", middleware.Protected(authService), quizHandler.UpdateQuiz)
	quizGroup.Delete("/:id", middleware.Protected(authService), quizHandler.DeleteQuiz)
	quizGroup.Post("/:id/regenerate", middleware.Protected(authService), quizHandler.RegenerateQuestions)
	quizGroup.Get("/:id/quality", quizHandler.GetQuality)
	quizGroup.Get("/:id/publication-check", quizHandler.CheckPublication)
	quizGroup.Post("/:id/publish", middleware.Protected(authService), quizHandler.PublishQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
