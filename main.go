package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"school-directory/config"
	"school-directory/controllers"
	"school-directory/driver"
	"school-directory/repository"
	"school-directory/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := driver.ConnectDB(ctx, cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer db.Close()

	if cfg.DB.CreateTable {
		if err := driver.EnsureSchema(ctx, db); err != nil {
			log.WithError(err).Error("create schools table")
		}
	}

	images, err := storage.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("configure image storage")
	}

	directory := controllers.Directory{
		Schools:        repository.NewSchoolRepository(db),
		Images:         images,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RequestTimeout: cfg.RequestTimeout,
	}
	if cfg.Image.Backend == config.BackendLocal {
		directory.UploadDir = cfg.UploadDir
		directory.UploadURLPath = cfg.UploadURLPath
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           controllers.NewRouter(directory),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
}

func setupLogging(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("unknown LOG_LEVEL, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
