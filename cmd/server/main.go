package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/blomoto/blomoto-server/internal/config"
	"github.com/blomoto/blomoto-server/internal/es"
	"github.com/blomoto/blomoto-server/internal/events"
	"github.com/blomoto/blomoto-server/internal/handlers"
	"github.com/blomoto/blomoto-server/internal/logging"
	"github.com/blomoto/blomoto-server/internal/repo"
	"github.com/blomoto/blomoto-server/internal/service/token"
	httpserver "github.com/blomoto/blomoto-server/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	db, err := config.InitDB(ctx, configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	store := repo.NewGorm(db)
	tokens := &token.Service{
		Store:         store,
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	} else {
		logger.Warn("KAFKA_ADDRESS not set, events disabled")
	}

	esClient, err := newSearchClient(configuration)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}
	if esClient == nil {
		logger.Warn("ES_URL not set, garage search disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:                 db,
		AuthHandler:        &handlers.AuthHandler{Store: store, Tokens: tokens, Producer: producer},
		UserHandler:        &handlers.UserHandler{Store: store, Producer: producer},
		ServiceHandler:     &handlers.ServiceHandler{Store: store},
		CategoryHandler:    &handlers.CategoryHandler{Store: store},
		GarageHandler:      &handlers.GarageHandler{Store: store, Producer: producer, ES: esClient, Index: configuration.ES_INDEX},
		ReviewHandler:      &handlers.ReviewHandler{Store: store, Producer: producer},
		AppointmentHandler: &handlers.AppointmentHandler{Store: store, Producer: producer},
		FavoriteHandler:    &handlers.FavoriteHandler{Store: store},
		SearchHandler:      &handlers.SearchHandler{ES: esClient, Index: configuration.ES_INDEX},
		Tokens:             tokens,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "addr", configuration.HTTP_ADDR)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}

func newSearchClient(cfg *config.Config) (*elasticsearch.Client, error) {
	if cfg.ES_URL == "" {
		return nil, nil
	}
	return es.NewClient(cfg)
}
