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

	"github.com/joho/godotenv"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/feed"
	"storefront/internal/httpserver"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	salerepo "storefront/internal/repository/sale"
	sessionrepo "storefront/internal/repository/session"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	sessionsvc "storefront/internal/service/session"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	saleRepo := salerepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool)
	sessionRepo := sessionrepo.NewPostgres(dbpool, cfg.SessionTTL)

	catalogService := catalogsvc.New(productRepo, saleRepo)
	checkoutService := checkoutsvc.New(orderRepo, productRepo, saleRepo)
	sessionService := sessionsvc.New(cfg.SessionTTL)

	feedCfg := feed.Config{
		StoreDomain: cfg.StoreDomain,
		BrandName:   cfg.StoreBrand,
		Currency:    cfg.StoreCurrency,
	}
	tiktokWriter := feed.NewTikTokWriter(productRepo, saleRepo, feedCfg)

	var metaSyncer *feed.MetaSyncer
	if cfg.MetaCatalogID != "" && cfg.MetaAccessToken != "" {
		var opts []feed.MetaOption
		if cfg.MetaGraphURL != "" {
			opts = append(opts, feed.WithGraphURL(cfg.MetaGraphURL))
		}
		metaSyncer = feed.NewMetaSyncer(productRepo, saleRepo, feedCfg, cfg.MetaCatalogID, cfg.MetaAccessToken, logger, opts...)
	}

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:        catalogService,
		Checkout:       checkoutService,
		Orders:         orderRepo,
		Sales:          saleRepo,
		Categories:     categoryRepo,
		Sessions:       sessionService,
		Carts:          sessionRepo,
		TikTok:         tiktokWriter,
		Meta:           metaSyncer,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				if n, err := sessionRepo.DeleteExpired(cleanupCtx); err != nil {
					logger.Printf("session cleanup: %v", err)
				} else if n > 0 {
					logger.Printf("session cleanup: removed %d expired sessions", n)
				}
			}
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
