package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bazaarnow/marketplace/internal/app"
	"github.com/bazaarnow/marketplace/internal/catalog"
	"github.com/bazaarnow/marketplace/internal/config"
	"github.com/bazaarnow/marketplace/internal/events"
	"github.com/bazaarnow/marketplace/internal/handlers"
	"github.com/bazaarnow/marketplace/internal/identity"
	"github.com/bazaarnow/marketplace/internal/logging"
	loggingmw "github.com/bazaarnow/marketplace/internal/middleware/logging"
	"github.com/bazaarnow/marketplace/internal/payment"
	"github.com/bazaarnow/marketplace/internal/search"
	"github.com/bazaarnow/marketplace/internal/state"
	httpserver "github.com/bazaarnow/marketplace/internal/transport/http"
)

const demoStaffPassword = "bazaar123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.ServiceName, cfg.LogLevel)

	db, err := cfg.InitDB()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	directory := identity.NewDirectory(db)
	if err := directory.SeedDemo(initCtx, demoStaffPassword); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	cat := catalog.Default()

	core := app.NewCore(cat, state.NewStore(db))
	core.LoadState(initCtx)
	if err := core.SeedDemoOrders(initCtx); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	if !producer.Enabled() {
		logger.Warn("kafka disabled, events will be dropped")
	}

	var searcher search.Searcher = &search.CatalogSearcher{Catalog: cat}
	if cfg.ESURL != "" {
		esClient, err := search.NewESClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch error: %v", err)
		}
		es := &search.ES{Client: esClient, Index: "products"}
		if err := es.IndexCatalog(initCtx, cat.Products()); err != nil {
			log.Fatalf("catalog index error: %v", err)
		}
		searcher = es
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Core:      core,
		JWTSecret: cfg.JWTSecret,
		AuthHandler: &handlers.AuthHandler{
			Core:      core,
			Directory: directory,
			JWTSecret: cfg.JWTSecret,
			Producer:  producer,
		},
		CatalogHandler:  &handlers.CatalogHandler{Catalog: cat},
		CartHandler:     &handlers.CartHandler{Core: core, Producer: producer},
		CheckoutHandler: &handlers.CheckoutHandler{Core: core, Payments: payment.New(cfg.PaymentDelay), Producer: producer},
		OrderHandler:    &handlers.OrderHandler{Core: core, Producer: producer},
		SearchHandler:   &handlers.SearchHandler{Searcher: searcher},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

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
