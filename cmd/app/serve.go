package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/yatube/post-service/internal/config"
	"github.com/yatube/post-service/internal/handler"
	"github.com/yatube/post-service/internal/rabbitmq"
	"github.com/yatube/post-service/internal/repository"
	"github.com/yatube/post-service/internal/repository/redisrepo"
	"github.com/yatube/post-service/internal/server"
	"github.com/yatube/post-service/internal/service"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	logger := a.logger

	cache := redisrepo.NewNoop()
	if a.cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: a.cfg.Redis.Addr,
		})
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			logger.Sugar().Errorf("failed to ping redis: %s", err.Error())
			return err
		}
		logger.Sugar().Infof("Successfully connected to Redis: %s", pong)
		defer rdb.Close()

		cache = redisrepo.New(rdb)
	} else {
		logger.Info("REDIS_ADDR is not set, caching disabled")
	}

	var publisher service.Publisher
	if a.cfg.RabbitMQ.ConnString != "" {
		mq, err := rabbitmq.New(a.cfg.RabbitMQ.ConnString)
		if err != nil {
			logger.Sugar().Errorf("failed to connect to rabbitmq: %s", err.Error())
			return err
		}
		logger.Info("Successfully connected to RabbitMQ")
		defer mq.Close()

		publisher = mq
	} else {
		logger.Info("RABBITMQ_CONN_STRING is not set, post events disabled")
	}

	repos := repository.New(a.storage, cache)
	services := service.New(logger, repos, publisher)
	handlers := handler.New(services, logger, handler.Config{
		AccessSecret: []byte(a.cfg.Auth.AccessSecret),
		CookieName:   a.cfg.Auth.CookieName,
		TokenTTL:     a.cfg.Auth.TokenTTL,
		LoginURL:     a.cfg.App.LoginURL,
		ClientOrigin: a.cfg.Client.Origin,
	})

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           a.cfg.App.Port,
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run(serverConfig)
	}()

	logger.Sugar().Infof("Server started on port %s", a.cfg.App.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			logger.Sugar().Errorf("failed to run http server: %s", err.Error())
			return err
		}
	}

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
