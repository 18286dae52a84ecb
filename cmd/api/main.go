package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"zettel-todo/internal/config"
	"zettel-todo/internal/db"
	apihttp "zettel-todo/internal/http"
	"zettel-todo/internal/queue"
	"zettel-todo/internal/repository"
	"zettel-todo/internal/service"
	"zettel-todo/internal/storage"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := db.Migrate(ctx, cfg); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := redisClient.Ping(ctxPing).Err(); err != nil {
		logger.Warn("redis ping failed", zap.Error(err))
	}
	cancel()

	var s3Client *storage.S3Client
	if cfg.S3Endpoint != "" {
		s3Client, err = storage.NewS3Client(ctx, cfg)
		if err != nil {
			logger.Warn("s3 client init failed", zap.Error(err))
		}
	}

	userRepo := repository.NewPgUserRepository(pool)
	taskRepo := repository.NewPgTaskRepository(pool)

	codeStore := service.NewRedisVerificationStore(redisClient)
	jobQueue := queue.NewRedisQueue(redisClient)
	limiter := apihttp.NewRedisRateLimiter(redisClient, time.Duration(cfg.RateLimitWindowSeconds)*time.Second, cfg.RateLimitMax)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	authSvc := service.NewAuthService(logger, userRepo, codeStore, jobQueue, time.Duration(cfg.CodeTTLSeconds)*time.Second)
	taskSvc := service.NewTaskService(logger, taskRepo)

	var avatarSvc *service.AvatarService
	var healthStorage apihttp.StorageHealthchecker
	if s3Client != nil {
		avatarSvc = service.NewAvatarService(logger, userRepo, s3Client, cfg.S3AvatarBucket)
		healthStorage = s3Client
	}

	userHandler := apihttp.NewUserHandler(logger, authSvc, avatarSvc, jwtSvc, userRepo)
	taskHandler := apihttp.NewTaskHandler(logger, taskSvc)
	healthHandler := apihttp.NewHealthHandler(logger, healthStorage)

	router := apihttp.NewRouter(logger, jwtSvc, limiter, userHandler, taskHandler, healthHandler)

	addr := ":" + cfg.HTTPPort
	logger.Info("api listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
