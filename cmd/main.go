package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"campuscare/backend/internal/api/handler"
	"campuscare/backend/internal/complaint"
	"campuscare/backend/internal/config"
	"campuscare/backend/internal/models"
	"campuscare/backend/internal/notify"
	"campuscare/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(log *zap.Logger) (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "campuscaredb"),
		envOr("DB_PORT", "5432"),
	)

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the storage layer relies on for the
	// at-most-once feedback constraint.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect PostgreSQL", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatal("failed to connect Redis", zap.Error(err))
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.StatusUpdate{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	log.Info("database and Redis connections established, migrations complete")
	return db, rdb
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, rdb := setupDependencies(log)
	store := storage.NewService(db, rdb, log)

	jurisdiction := config.LoadJurisdiction()
	notifier := notify.NewRedisNotifier(rdb, log)

	complaints := complaint.NewService(store, jurisdiction, notifier, log)
	feedback := complaint.NewFeedbackService(store, jurisdiction, log)

	r := gin.Default()
	h := handler.NewHandler(store, complaints, feedback, notifier, []byte(jwtSecret), log)
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Info("starting CampusCare backend", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
