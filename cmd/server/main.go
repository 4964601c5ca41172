package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cat-exhibition/internal/auth"
	"cat-exhibition/internal/config"
	apphttp "cat-exhibition/internal/http"
	"cat-exhibition/internal/repository"
	"cat-exhibition/internal/repository/postgres"
	"cat-exhibition/internal/repository/sqlite"
	"cat-exhibition/internal/scheduler"
	"cat-exhibition/internal/service"
	"cat-exhibition/internal/storage"
)

// @title Cat Exhibition API
// @version 1.0
// @description Cats, breeds and one-vote-per-user ratings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()
	logger.Infof("using %s database", cfg.Database.Driver)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	issuer := auth.NewIssuer(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.Auth.RefreshTTLHours)*time.Hour,
	)
	userService := service.NewUserService(store.Users, cfg.Auth.MinPasswordLength)
	authService := service.NewAuthService(userService, store.Tokens, issuer)
	breedService := service.NewBreedService(store.Breeds)
	catService := service.NewCatService(store.Cats, store.Breeds, service.CatServiceConfig{
		Storage:        storageSvc,
		KeyPrefix:      cfg.Storage.KeyPrefix,
		PresignExpires: time.Duration(cfg.Storage.PresignMinutes) * time.Minute,
		MaxPhotoBytes:  cfg.Storage.MaxPhotoBytes,
		Logger:         logger,
	})
	voteService := service.NewVoteService(store.Votes, store.Cats)

	jobs, err := scheduler.New(scheduler.Config{
		Reconcile: cfg.Scheduler.Reconcile,
		Purge:     cfg.Scheduler.Purge,
		Logger:    logger.WithField("component", "scheduler"),
	}, voteService, authService)
	if err != nil {
		logger.Fatalf("setup scheduler: %v", err)
	}
	jobs.Start()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		authService,
		breedService,
		catService,
		voteService,
		logger.WithField("component", "http"),
		cfg.Storage.MaxPhotoBytes,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	jobs.Stop(shutdownCtx)

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, keeping %s", cfg.Log.Level, logger.GetLevel())
	}
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
}

func openStore(ctx context.Context, cfg config.Config) (*sql.DB, *repository.Store, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgres.Open(ctx, cfg.Database.DSN)
	default:
		db, err = sqlite.Open(cfg.Database.Path)
	}
	if err != nil {
		return nil, nil, err
	}

	var store *repository.Store
	switch cfg.Database.Driver {
	case "postgres":
		store, err = postgres.NewStore(ctx, db)
	default:
		store, err = sqlite.NewStore(ctx, db)
	}
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("init schema: %w", err)
	}
	return db, store, nil
}

// buildStorage returns nil when no bucket is configured; photo endpoints then answer 503.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Warn("storage bucket not configured, cat photos disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client, cfg.Storage.Bucket), nil
}
