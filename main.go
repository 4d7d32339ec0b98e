package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-agency/config"
	"travel-agency/controllers/media"
	"travel-agency/database"
	"travel-agency/httpServices/unsplash"
	"travel-agency/logger"
	"travel-agency/middleware"
	"travel-agency/repository"
	"travel-agency/routes"
	"travel-agency/services/audit"
	"travel-agency/services/draft"
	"travel-agency/services/generator"
	"travel-agency/services/ratelimit"
	"travel-agency/services/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	logger.Init("")

	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768, // 32KB read buffer
		WriteBufferSize: 32768, // 32KB write buffer
		ReadTimeout:     time.Second * 30,
		// AI generation may take up to AITimeout plus the image lookups
		WriteTimeout: cfg.AITimeout + cfg.ImageTimeout + 30*time.Second,
		BodyLimit:    int(cfg.MaxUploadBytes) + 1024*1024,
	})

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}
	repo := repository.New(db)

	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	text, err := generator.New(ctx, generator.Options{
		Provider:      cfg.AIProvider,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
		OpenAIModel:   cfg.OpenAIModel,
	})
	if err != nil {
		logger.Warning(fmt.Sprintf("AI generation disabled: %v", err))
		text = generator.Unavailable{Err: err}
	}

	images := unsplash.NewClient("", cfg.UnsplashAccessKey, cfg.ImageTimeout)
	if !images.Enabled() {
		logger.Warning("UNSPLASH_ACCESS_KEY not set, drafts will have no images")
	}

	history := audit.NewGenerationService(db)
	pipeline := draft.NewPipeline(draft.Options{
		Roles:        repo,
		Tours:        repo,
		Posts:        repo,
		Text:         text,
		Images:       images,
		Recorder:     history,
		AITimeout:    cfg.AITimeout,
		ImageTimeout: cfg.ImageTimeout,
	})

	var uploader media.Uploader
	if cfg.MinioEndpoint != "" {
		store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, cfg.MediaBaseURL)
		if err != nil {
			logger.Error("Media storage unavailable", err)
		} else {
			uploader = storage.NewMediaService(store)
		}
	}

	var limiter ratelimit.Limiter = ratelimit.NewLocalLimiter(cfg.InquiryLimitPerMinute, time.Minute)
	if cfg.RedisAddr != "" {
		redisLimiter, err := ratelimit.NewRedisLimiter(ratelimit.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Limit:    cfg.InquiryLimitPerMinute,
			Window:   time.Minute,
		})
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err = redisLimiter.Ping(pingCtx)
			cancel()
			if err != nil {
				_ = redisLimiter.Close()
			}
		}
		if err != nil {
			logger.Error("Redis rate limiter unavailable, using in-process limiter", err)
		} else {
			limiter = redisLimiter
			defer redisLimiter.Close()
		}
	}

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.FrontendURL != "*",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Config:   cfg,
		Repo:     repo,
		Verifier: middleware.NewTokenVerifier(cfg.JWTSecret, cfg.PublicKeyURL),
		Logs:     asyncLogger,
		Limiter:  limiter,
		Pipeline: pipeline,
		History:  history,
		Media:    uploader,
	})

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Server shutdown failed", err)
		}
	}()

	logger.Success("Server is running on " + cfg.Address() +
		"\n\t\t\t\t\t\t******************************************************************************************\n")
	if err := app.Listen(cfg.Address()); err != nil {
		logger.Error("Server stopped", err)
	}
	asyncLogger.Close()
}
