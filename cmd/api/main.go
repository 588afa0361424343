package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitalink/internal/adapter"
	"vitalink/internal/adapter/goalsource"
	"vitalink/internal/adapter/otp"
	"vitalink/internal/config"
	"vitalink/internal/domain"
	"vitalink/internal/gateway"
	"vitalink/internal/handler"
	"vitalink/internal/logger"
	"vitalink/internal/middleware"
	"vitalink/internal/repository"
	"vitalink/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
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

	// Remote data gateway (rows + auth)
	gw, err := gateway.NewClient(cfg.Gateway)
	if err != nil {
		appLogger.Fatal("Failed to create gateway client", zap.Error(err))
	}

	// Redis-backed cache: OTP challenges, generation gate, snapshots
	redisClient, err := adapter.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	cache := adapter.NewRedisCacheAdapter(redisClient)

	// Goal source
	var source domain.GoalSource
	switch cfg.Goals.Source {
	case "webhook":
		appLogger.Info("Using webhook goal source", zap.String("endpoint", cfg.Goals.Endpoint))
		source, err = goalsource.NewWebhookGoalSource(cfg.Goals.Endpoint, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create webhook goal source", zap.Error(err))
		}
	case "ollama":
		appLogger.Info("Using Ollama goal source",
			zap.String("server_url", cfg.Goals.OllamaURL),
			zap.String("model", cfg.Goals.OllamaModel))
		ollamaHTTPClient := &http.Client{Timeout: 20 * time.Second}
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.Goals.OllamaURL),
			ollama.WithModel(cfg.Goals.OllamaModel),
			ollama.WithHTTPClient(ollamaHTTPClient),
		)
		if err != nil {
			appLogger.Fatal("Failed to create LLM client", zap.Error(err))
		}
		source = goalsource.NewOllamaGoalSource(llm, appLogger)
	default:
		appLogger.Fatal(fmt.Sprintf("Unsupported goal source: %s. Check goals.source in config.", cfg.Goals.Source))
	}

	// OTP delivery
	fallback := ""
	if cfg.Auth.AllowDevOTP {
		fallback = cfg.Auth.DevOTPCode
		appLogger.Warn("Development OTP fallback is enabled; do not run this in production")
	}
	sender, err := otp.NewWebhookSender(cfg.Auth.OTPEndpoint, fallback, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create OTP sender", zap.Error(err))
	}

	// Repositories
	userRepository := repository.NewUserRepository(gw)
	pointsRepository := repository.NewPointsRepository(gw)
	metricsRepository := repository.NewMetricsRepository(gw)
	gameRepository := repository.NewGameRepository(gw)
	recommendationRepository := repository.NewRecommendationRepository(gw)

	// Services
	pointsService := service.NewPointsService(pointsRepository)
	authService := service.NewAuthService(gw.Auth(), userRepository, pointsRepository, sender, cache, cfg.Auth)
	userService := service.NewUserService(userRepository, pointsRepository)
	metricsService := service.NewMetricsService(metricsRepository, pointsService)
	gameService := service.NewGameService(gameRepository, pointsService)
	goalService := service.NewGoalService(recommendationRepository, pointsService, source, cache)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	metricsHandler := handler.NewMetricsHandler(metricsService)
	gameHandler := handler.NewGameHandler(gameService)
	goalHandler := handler.NewGoalHandler(goalService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestLogger())

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/profile", authHandler.CompleteProfile)
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/verify-otp", authHandler.VerifyOtp)
	auth.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	users := api.Group("/users", middleware.Protected(authService))
	users.Get("/me", userHandler.Me)
	users.Put("/me/health", userHandler.UpdateHealthProfile)

	metrics := api.Group("/metrics", middleware.Protected(authService))
	metrics.Get("/today", metricsHandler.SubmittedToday)
	metrics.Post("/", metricsHandler.Submit)

	games := api.Group("/games", middleware.Protected(authService))
	games.Post("/sessions", gameHandler.RecordSession)
	games.Get("/sessions", gameHandler.ListSessions)

	goals := api.Group("/goals", middleware.Protected(authService))
	goals.Get("/", goalHandler.List)
	goals.Post("/generate", goalHandler.Generate)
	goals.Put("/", goalHandler.Save)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		appLogger.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			appLogger.Error("Server shutdown failed", zap.Error(err))
		}
		if err := redisClient.Close(); err != nil {
			appLogger.Error("Redis close failed", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLogger.Info("Starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		appLogger.Fatal("Server stopped", zap.Error(err))
	}
}
