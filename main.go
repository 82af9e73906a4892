package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"net/http"
	"os/signal"
	"storefront/cache"
	"storefront/config"
	"storefront/notify"
	"storefront/repository"
	"storefront/routers"
	"storefront/services"
	"storefront/storage"
	"syscall"
	"time"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := config.SetupLogger(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("setup logger")
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.SetupDatabaseConnection(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()
	store := repository.NewStore(db)

	rdb, err := config.SetupRedisConnection(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	var productCache services.ProductCache
	if rdb != nil {
		defer rdb.Close()
		productCache = cache.NewProductCache(rdb, cfg.Redis.TTL)
	}

	var notifier notify.Notifier = notify.Unconfigured{}
	switch {
	case len(cfg.Kafka.Brokers) > 0:
		kafkaNotifier := notify.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.PasswordResetTopic)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
	case cfg.Kafka.LogOnly:
		log.Warn().Msg("kafka.logOnly set, password reset events are only logged")
		notifier = notify.LogNotifier{}
	default:
		log.Warn().Msg("no kafka brokers configured, forgot-password requests will fail")
	}

	mediaStorage, err := setupStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("setup media storage")
	}

	identity := services.NewIdentityService(store, notifier)
	admins := services.NewAdminService(store)
	for _, seed := range cfg.Admins {
		if _, err := admins.Seed(ctx, seed.Adminname, seed.Adminpass); err != nil {
			log.Fatal().Err(err).Str("adminname", seed.Adminname).Msg("seed admin")
		}
	}

	uploadDir := ""
	if cfg.Storage.Driver == "disk" {
		uploadDir = cfg.Storage.Dir
	}
	router := routers.SetupRouters(routers.Services{
		Identity: identity,
		Catalog:  services.NewCatalogService(store, productCache),
		Cart:     services.NewCartService(store),
		Admin:    admins,
		Media:    services.NewMediaService(mediaStorage, identity, cfg.Storage.MaxImages, cfg.Storage.MaxImageSize),
	}, uploadDir)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func setupStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	baseURL := cfg.Server.PublicBaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}

	switch cfg.Storage.Driver {
	case "disk":
		return storage.NewDisk(cfg.Storage.Dir, baseURL), nil
	case "s3":
		return storage.NewS3(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3Prefix, cfg.Storage.S3BaseURL)
	case "cloudinary":
		return storage.NewCloudinary(cfg.Storage.CloudinaryURL, cfg.Storage.Folder)
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
