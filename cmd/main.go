package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube/internal/cache"
	"github.com/yatube/yatube/internal/config"
	"github.com/yatube/yatube/internal/domain"
	"github.com/yatube/yatube/internal/handler"
	"github.com/yatube/yatube/internal/repository"
	"github.com/yatube/yatube/internal/service"
	"github.com/yatube/yatube/pkg/database"
	"github.com/yatube/yatube/pkg/jwt"
	pkglog "github.com/yatube/yatube/pkg/log"
	"github.com/yatube/yatube/pkg/middleware"
	"github.com/yatube/yatube/pkg/storage"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// 2. Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "yatube",
	})
	logger := pkglog.L()

	// 3. Init DB (GORM, auto-migrate all models)
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get underlying sql.DB")
	}
	defer sqlDB.Close()

	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.GroupModel{},
		&domain.PostModel{},
		&domain.CommentModel{},
		&domain.FollowModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// 4. Init page cache. Without a Redis address the home page is cached
	// in process memory, which is fine for a single instance.
	var pages cache.PageCache
	if cfg.Redis.Address != "" {
		redisCache, err := cache.NewRedisPageCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, "yatube")
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		pages = redisCache
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis page cache connected")
	} else {
		pages = cache.NewMemoryPageCache()
		logger.Info().Msg("using in-memory page cache")
	}
	defer pages.Close()

	// 5. Init blob storage for post images
	var blobs storage.Storage
	switch cfg.Storage.Driver {
	case "s3":
		blobs, err = storage.NewS3Storage(context.Background(), cfg.Storage.S3)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init s3 storage")
		}
		logger.Info().Str("bucket", cfg.Storage.S3.Bucket).Msg("s3 storage ready")
	default:
		blobs, err = storage.NewLocalStorage(cfg.Storage.Local)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init local storage")
		}
		logger.Info().Str("path", cfg.Storage.Local.BasePath).Msg("local storage ready")
	}

	// 6. Create repos and services
	postRepo := repository.NewGormPostRepository(db)
	groupRepo := repository.NewGormGroupRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	followRepo := repository.NewGormFollowRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	feedSvc := service.NewFeedService(postRepo, groupRepo, userRepo, followRepo)
	postSvc := service.NewPostService(postRepo, groupRepo, commentRepo, blobs)
	followSvc := service.NewFollowService(followRepo, userRepo)
	groupSvc := service.NewGroupService(groupRepo)

	// 7. Create auth middleware. Tokens are issued by the external identity
	// system; this service only validates them.
	if cfg.Auth.JWTSecret == "" {
		logger.Fatal().Msg("auth.jwt_secret is required")
	}
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	authMiddleware := middleware.NewAuthMiddleware(tokens, cfg.Auth.LoginURL)

	// 8. Setup Gin router + HTTP server
	httpHandler := handler.NewHandler(
		feedSvc, postSvc, followSvc, groupSvc,
		pages, authMiddleware,
		cfg.Feed.PageSize, cfg.Feed.HomeCacheTTL,
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))
	httpHandler.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logger.Info().Str("addr", addr).Msg("yatube starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// 9. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("HTTP server forced to shutdown")
	}
	logger.Info().Msg("yatube stopped")
}
