package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"

	"blogger/cache"
	"blogger/config"
	"blogger/database"
	"blogger/handlers"
	"blogger/logger"
	"blogger/media"
	"blogger/repositories"
	"blogger/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store, mediaRoot, err := newMediaStore(cfg)
	if err != nil {
		logrus.Fatalf("Failed to set up media storage: %v", err)
	}

	pageCache, err := newPageCache(cfg)
	if err != nil {
		logrus.Fatalf("Failed to set up page cache: %v", err)
	}

	h, err := handlers.NewHandler(repositories.New(db.DB), store, handlers.NewCookieStore(sessionKey(cfg), cfg.SecureCookies), handlers.Options{
		PostsPerPage:   cfg.PostsPerPage,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		logrus.Fatalf("Failed to load templates: %v", err)
	}

	var csrfKey []byte
	if cfg.CSRFKey != "" {
		csrfKey = []byte(cfg.CSRFKey)
	}
	router := routes.SetupRoutes(h, routes.Options{
		IndexCache:    pageCache,
		MediaRoot:     mediaRoot,
		MediaURL:      cfg.MediaURL,
		CSRFKey:       csrfKey,
		SecureCookies: cfg.SecureCookies,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.Addr).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
	logrus.Info("Server stopped")
}

// newMediaStore returns the image store and, for the local backend, the
// directory the router serves.
func newMediaStore(cfg *config.Config) (media.Store, string, error) {
	if cfg.MediaBackend == "s3" {
		store, err := media.NewS3Store(cfg.S3Bucket, cfg.S3Region, cfg.S3BaseURL)
		return store, "", err
	}
	store, err := media.NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
	if err != nil {
		return nil, "", err
	}
	return store, store.Root(), nil
}

func newPageCache(cfg *config.Config) (cache.PageCache, error) {
	if cfg.CacheBackend == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPasswd,
			DB:       cfg.RedisDB,
			Prefix:   "blogger:",
			TTL:      cfg.IndexCacheTTL,
		})
	}
	return cache.NewMemoryCache(cfg.CacheSize, cfg.IndexCacheTTL), nil
}

// sessionKey signs session cookies. Without SECRET_KEY a random key is used,
// which logs everybody out on restart.
func sessionKey(cfg *config.Config) []byte {
	if cfg.SecretKey != "" {
		return []byte(cfg.SecretKey)
	}
	if cfg.IsProduction() {
		logrus.Fatal("SECRET_KEY must be set in production")
	}
	logrus.Warn("SECRET_KEY is not set, using a random session key")
	return securecookie.GenerateRandomKey(32)
}
