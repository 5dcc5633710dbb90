package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dbadapter "localinfo/internal/adapters/database"
	"localinfo/internal/adapters/httpapi"
	"localinfo/internal/adapters/objectstore"
	redisadapter "localinfo/internal/adapters/redis"
	"localinfo/internal/config"
	"localinfo/internal/core/attachment"
	categoryapp "localinfo/internal/core/category/service"
	commentapp "localinfo/internal/core/comment/service"
	postapp "localinfo/internal/core/post/service"
	userapp "localinfo/internal/core/user/service"
	"localinfo/internal/ports/orphan"
	"localinfo/internal/ports/storage"
	"localinfo/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := dbadapter.AutoMigrate(db); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	logger.Info("database migrations completed")

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = config.OpenRedis(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
	} else {
		logger.Warn("REDIS_ADDR not set, orphaned uploads will only be logged")
	}
	defer closeResources(logger, db, redisClient)

	store, uploadsDir, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("object storage setup failed", zap.Error(err))
	}

	var orphans orphan.Queue
	if redisClient != nil {
		orphans = redisadapter.NewOrphanQueueRedis(redisClient, logger)
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	categoryRepo := dbadapter.NewCategoryRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	photoRepo := dbadapter.NewPhotoRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)
	commentPhotoRepo := dbadapter.NewCommentPhotoRepositoryDatabase(db)
	txManager := dbadapter.NewTransactionManager(db)

	uploads := attachment.NewUploads(store, orphans, logger)

	userSvc := userapp.NewUserService(userRepo, txManager, []byte(cfg.JWTSecret), logger)
	categorySvc := categoryapp.NewCategoryService(categoryRepo, txManager, logger)
	postSvc := postapp.NewPostService(postapp.Repositories{
		Posts:         postRepo,
		Photos:        photoRepo,
		Comments:      commentRepo,
		CommentPhotos: commentPhotoRepo,
		Users:         userRepo,
		Categories:    categoryRepo,
	}, txManager, uploads, logger)
	commentSvc := commentapp.NewCommentService(commentapp.Repositories{
		Comments:      commentRepo,
		CommentPhotos: commentPhotoRepo,
		Posts:         postRepo,
		Users:         userRepo,
	}, txManager, uploads, logger)

	if err := categorySvc.SeedDefaults(ctx); err != nil {
		logger.Fatal("seeding categories failed", zap.Error(err))
	}

	if orphans != nil {
		sweeper := workers.NewOrphanSweeper(orphans, store, cfg.SweepBatch, cfg.SweepInterval, logger)
		go sweeper.Run(ctx)
	}

	r := httpapi.SetupRoutes(httpapi.UseCases{
		Users:      userSvc,
		Categories: categorySvc,
		Posts:      postSvc,
		Comments:   commentSvc,
	}, httpapi.Options{
		JWTSecret:      []byte(cfg.JWTSecret),
		CORSOrigin:     cfg.CORSOrigin,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		MaxUploadBytes: cfg.MaxUploadBytes,
		UploadsDir:     uploadsDir,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

// openStorage returns the object store and, for local storage, the directory to serve.
func openStorage(cfg *config.Config, logger *zap.Logger) (storage.ObjectStorage, string, error) {
	if cfg.StorageDriver == config.StorageS3 {
		sess, err := objectstore.NewS3Session(cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, "", err
		}
		logger.Info("using s3 storage", zap.String("bucket", cfg.S3Bucket))
		return objectstore.NewS3Store(sess, cfg.S3Bucket, cfg.PublicBaseURL, logger), "", nil
	}

	local, err := objectstore.NewLocalStore(cfg.LocalStorageDir, cfg.LocalBaseURL()+"/uploads", logger)
	if err != nil {
		return nil, "", err
	}
	logger.Info("using local storage", zap.String("dir", local.Dir()))
	return local, local.Dir(), nil
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("error closing redis connection", zap.Error(err))
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("error getting raw db", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("error closing database connection", zap.Error(err))
	}
}
