package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	mediaapp "github.com/homefix-api/internal/application/media"
	"github.com/homefix-api/internal/application/session"
	"github.com/homefix-api/internal/application/token"
	"github.com/homefix-api/internal/application/user"
	"github.com/homefix-api/internal/config"
	awsinfra "github.com/homefix-api/internal/infrastructure/aws"
	"github.com/homefix-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/homefix-api/internal/infrastructure/jwt"
	minioinfra "github.com/homefix-api/internal/infrastructure/minio"
	redisinfra "github.com/homefix-api/internal/infrastructure/redis"
	s3infra "github.com/homefix-api/internal/infrastructure/s3"
	"github.com/homefix-api/internal/pkg/logger"
	transporthttp "github.com/homefix-api/internal/transport/http"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// objectStore is what the media services need from a storage backend.
type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// revocationStore is what the token service needs from a revocation backend.
type revocationStore interface {
	Revoke(ctx context.Context, token, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.LogLevel, Dev: cfg.LogDev})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if envErr != nil {
		zl.Info("no .env file found, reading from environment")
	}
	if cfg.UsesDevSecret() {
		zl.Warn("JWT_SECRET is not set; signing tokens with the development placeholder")
	}

	ctx := context.Background()
	awsCfg, err := awsinfra.Load(ctx, cfg)
	if err != nil {
		zl.Fatal("aws config", zap.Error(err))
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(awsCfg, cfg)
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables, zl)
	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		zl.Fatal("jwt provider", zap.Error(err))
	}
	revocations, closeRevocations, err := newRevocationStore(ctx, cfg, dynamoClient)
	if err != nil {
		zl.Fatal("revocation store", zap.Error(err))
	}
	defer closeRevocations()
	tokenSvc := token.NewService(token.ServiceDeps{
		Signer:      jwtProvider,
		Revocations: revocations,
		Expiry:      cfg.JWTExpiry,
	})

	mediaStore, imageStore, err := newObjectStores(ctx, cfg, awsCfg, zl)
	if err != nil {
		zl.Fatal("object storage", zap.Error(err))
	}

	deps := &transporthttp.Deps{
		Users: user.NewService(user.ServiceDeps{
			UserRepo: userRepo,
			Tokens:   tokenSvc,
		}),
		Sessions: session.NewService(session.ServiceDeps{
			UserRepo: userRepo,
			Tokens:   tokenSvc,
			Logger:   zl.Named("session"),
		}),
		Media: mediaapp.NewService(mediaapp.ServiceDeps{
			Variant:   mediaapp.MediaVariant(cfg.MaxMediaBytes),
			MediaRepo: dynamo.NewMediaRepo(dynamoClient, cfg.DynamoTables.Media),
			Objects:   mediaStore,
			UserRepo:  userRepo,
			UploadDir: cfg.UploadDir,
			Logger:    zl.Named("media"),
		}),
		Images: mediaapp.NewService(mediaapp.ServiceDeps{
			Variant:   mediaapp.ImageVariant(cfg.MaxImageBytes),
			MediaRepo: dynamo.NewMediaRepo(dynamoClient, cfg.DynamoTables.Images),
			Objects:   imageStore,
			UserRepo:  userRepo,
			UploadDir: cfg.UploadDir,
			Logger:    zl.Named("media"),
		}),
		Tokens:            tokenSvc,
		Logger:            zl.Named("http"),
		StorageConfigured: cfg.StorageConfigured(),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  5 * time.Minute, // large video uploads
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("storage", cfg.StorageBackend),
			zap.String("revocation", cfg.RevocationBackend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("forced shutdown", zap.Error(err))
		return
	}
	zl.Info("server stopped")
}

func newRevocationStore(ctx context.Context, cfg *config.Config, dynamoClient *dynamodb.Client) (revocationStore, func(), error) {
	switch cfg.RevocationBackend {
	case config.RevocationRedis:
		client, err := redisinfra.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return redisinfra.NewRevocationStore(client), func() { _ = client.Close() }, nil
	case config.RevocationDynamo:
		return dynamo.NewRevokedTokenRepo(dynamoClient, cfg.DynamoTables.RevokedTokens), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown REVOCATION_BACKEND %q", cfg.RevocationBackend)
	}
}

// newObjectStores returns the stores for the media and images buckets.
func newObjectStores(ctx context.Context, cfg *config.Config, awsCfg aws.Config, zl *zap.Logger) (objectStore, objectStore, error) {
	switch cfg.StorageBackend {
	case config.StorageMinIO:
		client, err := minioinfra.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		m := minioinfra.NewStore(client, cfg.MediaBucket, cfg)
		i := minioinfra.NewStore(client, cfg.ImagesBucket, cfg)
		for _, s := range []*minioinfra.Store{m, i} {
			if err := s.EnsureBucket(ctx); err != nil {
				zl.Warn("could not ensure bucket", zap.Error(err))
			}
		}
		return m, i, nil
	case config.StorageS3:
		client := s3infra.NewClient(awsCfg, cfg)
		return s3infra.NewStore(client, cfg.MediaBucket, cfg), s3infra.NewStore(client, cfg.ImagesBucket, cfg), nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}
