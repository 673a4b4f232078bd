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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/marathi-api/internal/alphabet"
	"github.com/yourusername/marathi-api/internal/config"
	"github.com/yourusername/marathi-api/internal/handler"
	"github.com/yourusername/marathi-api/internal/middleware"
	pgRepo "github.com/yourusername/marathi-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/marathi-api/internal/repository/redis"
	"github.com/yourusername/marathi-api/internal/service"
	"github.com/yourusername/marathi-api/internal/service/exercisebuilder"
	"github.com/yourusername/marathi-api/pkg/auth"
	"github.com/yourusername/marathi-api/pkg/database"
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

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), !isProduction)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	progressRepo := pgRepo.NewProgressRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to create cache repository: %v", err)
		os.Exit(1)
	}

	// Каталог и выбор букв. Ошибка здесь означает неверную конфигурацию каталога.
	catalog := alphabet.Marathi()
	selector, err := exercisebuilder.NewLetterSelector(catalog, exercisebuilder.DefaultSelectionConfig())
	if err != nil {
		log.Printf("Failed to create letter selector: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	exerciseService, err := service.NewExerciseService(
		progressRepo,
		catalog,
		selector,
		cfg.Exercise.StoreTimeout,
		cfg.Exercise.DistractorMaxDifficulty,
	)
	if err != nil {
		log.Printf("Failed to create exercise service: %v", err)
		os.Exit(1)
	}
	progressService := service.NewProgressService(progressRepo, cacheRepo, catalog, cfg.Exercise.DashboardCacheTTL)

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer)
	if err != nil {
		log.Printf("Failed to create JWT service: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики
	catalogHandler := handler.NewCatalogHandler(catalog)
	exerciseHandler := handler.NewExerciseHandler(exerciseService, progressService)
	progressHandler := handler.NewProgressHandler(progressService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, cfg.JWT.CookieName)
	rateLimiter := middleware.NewRateLimiter(cacheRepo)
	answerLimit := middleware.DefaultAnswerRateLimitConfig()
	answerLimit.MaxRequests = cfg.RateLimit.MaxRequests
	answerLimit.Window = cfg.RateLimit.Window

	// Инициализируем роутер Gin
	router := gin.Default()

	// В production не доверяем прокси-заголовкам, в development доверяем localhost
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Справочники доступны без токена
		api.GET("/modules", catalogHandler.ListModules)
		api.GET("/letters", catalogHandler.ListLetters)

		exercises := api.Group("/exercises/:module")
		exercises.Use(authMiddleware.RequireAuth(), middleware.ExtractModuleParam("module"))
		{
			exercises.GET("", exerciseHandler.GetExercise)
			exercises.GET("/options", exerciseHandler.GetOptions)

			answerHandlers := []gin.HandlerFunc{exerciseHandler.SubmitAnswer}
			if cfg.RateLimit.Enabled {
				answerHandlers = append([]gin.HandlerFunc{rateLimiter.Limit(answerLimit)}, answerHandlers...)
			}
			exercises.POST("/answers", answerHandlers...)
		}

		progress := api.Group("/progress")
		progress.Use(authMiddleware.RequireAuth())
		{
			progress.GET("", progressHandler.GetProgress)
			progress.GET("/dashboard", progressHandler.GetDashboard)
			progress.GET("/mistakes", progressHandler.GetCommonMistakes)
			progress.GET("/export", progressHandler.ExportProgress)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	log.Println("Server exited properly")
}
