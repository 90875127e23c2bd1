package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/feed"
	productrepo "storefront/internal/repository/product"
	salerepo "storefront/internal/repository/sale"
)

func main() {
	var (
		target string
		out    string
	)
	flag.StringVar(&target, "target", "tiktok", "Feed target: tiktok or meta")
	flag.StringVar(&out, "out", "tiktok-catalog.csv", "Output file for the tiktok target")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[feed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	productRepo := productrepo.NewPostgres(pool, logger)
	saleRepo := salerepo.NewPostgres(pool)
	feedCfg := feed.Config{
		StoreDomain: cfg.StoreDomain,
		BrandName:   cfg.StoreBrand,
		Currency:    cfg.StoreCurrency,
	}

	start := time.Now()
	switch target {
	case "tiktok":
		f, err := os.Create(out)
		if err != nil {
			logger.Fatalf("create output: %v", err)
		}
		defer f.Close()

		writer := feed.NewTikTokWriter(productRepo, saleRepo, feedCfg)
		count, err := writer.Write(ctx, f)
		if err != nil {
			logger.Fatalf("write feed: %v", err)
		}
		fmt.Printf("Wrote %d products to %s in %s\n", count, out, time.Since(start).Truncate(time.Millisecond))

	case "meta":
		var opts []feed.MetaOption
		if cfg.MetaGraphURL != "" {
			opts = append(opts, feed.WithGraphURL(cfg.MetaGraphURL))
		}
		syncer := feed.NewMetaSyncer(productRepo, saleRepo, feedCfg, cfg.MetaCatalogID, cfg.MetaAccessToken, logger, opts...)
		count, err := syncer.Sync(ctx)
		if err != nil {
			logger.Fatalf("meta sync: %v", err)
		}
		fmt.Printf("Synced %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))

	default:
		flag.Usage()
		os.Exit(2)
	}
}
