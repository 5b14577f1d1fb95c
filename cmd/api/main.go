package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm/logger"

	"github.com/yourusername/quiz-maker/internal/config"
	"github.com/yourusername/quiz-maker/internal/domain/repository"
	"github.com/yourusername/quiz-maker/internal/handler"
	"github.com/yourusername/quiz-maker/internal/middleware"
	pgRepo "github.com/yourusername/quiz-maker/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-maker/internal/repository/redis"
	"github.com/yourusername/quiz-maker/internal/service"
	"github.com/yourusername/quiz-maker/pkg/auth"
	"github.com/yourusername/quiz-maker/pkg/auth/manager"
	"github.com/yourusername/quiz-maker/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := cfg.Server.IsRelease()
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLogLevel := logger.Info
	if isProduction {
		gormLogLevel = logger.Warn
	}

	// Подключаемся к хранилищу
	db, err := database.NewDB(cfg.Database, gormLogLevel)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции (только для PostgreSQL, sqlite создает схему сам)
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Redis не обязателен: без него кеш отключен, а отзыв сессий не сохраняется
	var redisClient redis.UniversalClient
	var cacheRepo repository.CacheRepository = redisRepo.NoOpCache{}
	if cfg.Redis.RedisEnabled() {
		redisClient, err = database.NewUniversalRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		log.Println("Successfully connected to Redis")

		cacheRepo, err = redisRepo.NewCacheRepo(redisClient, cfg.Redis.KeyPrefix)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("Warning: Redis is not configured, caching and session revocation are disabled")
	}

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	quizService := service.NewQuizService(quizRepo, cacheRepo, time.Duration(cfg.Quiz.CacheTTLSec)*time.Second)

	// Сессии
	jwtService, err := auth.NewJWTService(
		cfg.Session.SecretKey,
		time.Duration(cfg.Session.LifetimeHrs)*time.Hour,
		cacheRepo,
	)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}
	sessions := manager.NewSessionManager(jwtService, cfg.Session.CookieName, cfg.Session.SecureCookie)

	router, err := handler.NewRouter(handler.RouterDeps{
		AuthHandler:    handler.NewAuthHandler(authService, sessions),
		QuizHandler:    handler.NewQuizHandler(quizService, cfg.Quiz.MaxImportBytes),
		AuthMiddleware: middleware.NewAuthMiddleware(sessions),
		RateLimiter:    middleware.NewRateLimiter(redisClient),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Release:        isProduction,
	})
	if err != nil {
		log.Printf("Failed to initialize router: %v", err)
		os.Exit(1)
	}

	// Настраиваем HTTP сервер с тайм-аутами
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		sqlDB.Close()
	}

	log.Println("Server exited properly")
}
