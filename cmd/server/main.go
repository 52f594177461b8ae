package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rgoodman/trade-journal-service/internal/api"
	"github.com/rgoodman/trade-journal-service/internal/cache"
	"github.com/rgoodman/trade-journal-service/internal/config"
	"github.com/rgoodman/trade-journal-service/internal/database"
	"github.com/rgoodman/trade-journal-service/internal/kafka"
	"github.com/rgoodman/trade-journal-service/internal/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	log.Info("connected to database", zap.String("host", cfg.Database.Host))

	// The cache is optional. Analytics endpoints compute fresh when
	// Redis is unavailable.
	var snapshots api.SnapshotCache
	redisCache, err := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second)
	if err != nil {
		log.Warn("redis unavailable, analytics caching disabled", zap.Error(err))
	} else {
		snapshots = redisCache
		defer redisCache.Close()
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ProducerTopic)
	defer producer.Close()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerTopic,
		cfg.Kafka.GroupID, db, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error("kafka consumer stopped", zap.Error(err))
		}
	}()

	handler := api.NewHandler(db, producer, snapshots, log, cfg.Analytics)
	router := api.SetupRoutes(handler)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting http server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
