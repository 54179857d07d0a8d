package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawhaven/internal/adoption"
	"pawhaven/internal/db"
	"pawhaven/internal/pets"
	"pawhaven/internal/server"
	"pawhaven/internal/storage"
	"pawhaven/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	s3Client := s3.NewFromConfig(awsConfig)
	images := storage.NewImageStore(s3Client, config.ImageBucket, config.ImageKeyPrefix, config.ImageBaseURL)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	petsRepo := store.NewPetRepository(pool)
	applicationsRepo := store.NewApplicationRepository(pool)
	contactsRepo := store.NewContactRepository(pool)
	usersRepo := store.NewUserRepository(pool)

	adoptions := adoption.NewService(applicationsRepo, petsRepo)
	registry := pets.NewRegistry(petsRepo)

	srv, err := server.New(
		config,
		logger,
		petsRepo,
		applicationsRepo,
		contactsRepo,
		usersRepo,
		adoptions,
		registry,
		images,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
