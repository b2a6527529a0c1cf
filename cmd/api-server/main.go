package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"reviewhub/database"
	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
	"reviewhub/internal/cache"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
	"reviewhub/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logg := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectDB(cfg, logg)
	if err != nil {
		logg.Fatal().Err(err).Msg("database connection failed")
	}

	rdb, err := cache.NewRedisClient(cfg)
	if err != nil {
		logg.Fatal().Err(err).Msg("redis client setup failed")
	}
	titleCache := cache.NewTitleCache(rdb, cfg.CacheTTL, logg)

	mail := mailer.NewSMTPMailer(cfg, logg)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services. The aggregator comes first: the review service depends on
	// it to keep title ratings current.
	aggregator := service.NewRatingAggregator(reviewRepo, titleRepo, titleCache, logg)
	authService := service.NewAuthService(userRepo, refreshTokenRepo, mail, cfg, logg)
	userService := service.NewUserService(userRepo, reviewRepo, aggregator)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, titleCache)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, aggregator)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	genreHandler := handler.NewGenreHandler(genreService)
	titleHandler := handler.NewTitleHandler(titleService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	commentHandler := handler.NewCommentHandler(commentService)

	r := gin.New()
	r.Use(middleware.RequestLogger(logg))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Authenticate(authService))

	authHandler.RegisterRoutes(api, middleware.RateLimit(cfg.AuthCodeRPS, cfg.AuthCodeBurst))
	userHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api)
	genreHandler.RegisterRoutes(api)
	titleHandler.RegisterRoutes(api)
	reviewHandler.RegisterRoutes(api)
	commentHandler.RegisterRoutes(api)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logg.Info().Str("addr", addr).Msg("starting api server")
	if err := r.Run(addr); err != nil {
		logg.Fatal().Err(err).Msg("server exited")
	}
}
