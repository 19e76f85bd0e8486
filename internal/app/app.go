package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "nonprofit_cms/internal/app/http"
	"nonprofit_cms/internal/config"
	"nonprofit_cms/internal/lib/logger/sl"
	"nonprofit_cms/internal/repository"
	contentservice "nonprofit_cms/internal/services/content_service"
	imageservice "nonprofit_cms/internal/services/image_service"
	"nonprofit_cms/internal/storage/cache"
	"nonprofit_cms/internal/storage/filestorage"
	"nonprofit_cms/internal/storage/postgresql"
	redisapp "nonprofit_cms/internal/storage/redis"
	httprouters "nonprofit_cms/internal/transport/http"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *postgresql.Storage
	redis      *redisapp.Client
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	catalog, err := cfg.Content.Catalog()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.EnsureSchema(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{log: log, storage: storage}

	documentCache, err := a.newCache(ctx, cfg)
	if err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.MaxSize)
	if err != nil {
		a.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	repo := repository.NewRepository(storage.Pool())

	contentService := contentservice.NewContentService(log, catalog, repo.Content, documentCache)
	imageService := imageservice.NewImageService(log, repo.Media, fileStorage)

	routers := httprouters.NewRouter(log, contentService, imageService, cfg.FileStorage.MaxSize)

	a.HTTPServer = httpapp.New(log, httpapp.Options{
		Host:            cfg.HTTP.Host,
		Port:            cfg.HTTP.Port,
		JWTSecret:       cfg.JWT.Secret,
		UploadDir:       fileStorage.GetBaseDir(),
		MaxUploadSize:   cfg.FileStorage.MaxSize,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, routers)

	log.Info("application initialized",
		slog.Int("pages", len(catalog.Pages())),
		slog.String("cache", cfg.Cache.Driver),
		slog.String("upload_dir", fileStorage.GetBaseDir()),
		slog.String("upload_base_url", cfg.Content.UploadBaseURL),
	)

	return a, nil
}

func (a *App) newCache(ctx context.Context, cfg *config.Config) (cache.DocumentCache, error) {
	switch cfg.Cache.Driver {
	case "redis":
		client := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := client.HealthCheck(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.redis = client
		return cache.NewRedisCache(client, cfg.Cache.TTL), nil
	case "memory", "":
		return cache.NewMemoryCache(cfg.Cache.TTL), nil
	case "none":
		return cache.NopCache{}, nil
	}

	return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
}

// Stop shuts the HTTP server down first, then releases the stores.
func (a *App) Stop() {
	const op = "app.Stop"

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Stop(); err != nil {
			a.log.Error("http server stop", slog.String("op", op), sl.Err(err))
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("redis close", slog.String("op", op), sl.Err(err))
		}
	}

	a.storage.Stop()
}
