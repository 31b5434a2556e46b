package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/yatube/post-service/internal/config"
	"github.com/yatube/post-service/internal/repository"
	"github.com/yatube/post-service/internal/repository/postgres"
	"github.com/yatube/post-service/internal/repository/sqlite"
	"go.uber.org/zap"
)

var errUnknownStorage = errors.New("unknown storage type")

// app holds what every command needs: config, logger and an open store.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	storage *repository.Storage
	close   func()
}

func bootstrap(ctx context.Context) (*app, error) {
	if err := loadEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.App.Debug)
	if err != nil {
		return nil, err
	}

	storage, closeStorage, err := openStorage(ctx, logger, cfg.Storage)
	if err != nil {
		logger.Sugar().Errorf("failed to open %s storage: %s", cfg.Storage.Type, err.Error())
		logger.Sync()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		storage: storage,
		close: func() {
			closeStorage()
			logger.Sync()
		},
	}, nil
}

// loadEnv reads .env when present.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openStorage(ctx context.Context, logger *zap.Logger, cfg config.StorageConfig) (*repository.Storage, func(), error) {
	switch cfg.Type {
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Sugar().Infof("Successfully opened SQLite database: %s", cfg.Path)

		return sqlite.New(db), func() { db.Close() }, nil
	case "postgres":
		dbConfig := config.DBConfig{
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			DBName:   os.Getenv("POSTGRES_DATABASE"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}
		db, err := postgres.DB(ctx, dbConfig)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := postgres.InitSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Successfully connected to PostgreSQL")

		return postgres.New(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownStorage, cfg.Type)
	}
}
