package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airbnb-webmap/api"
	"airbnb-webmap/config"
	"airbnb-webmap/models"
	"airbnb-webmap/services"
	"airbnb-webmap/storage"
	"airbnb-webmap/store"
	"airbnb-webmap/utils"
)

func main() {
	neighbourhood := flag.String("neighbourhood", "", "neighbourhood to query")
	roomType := flag.String("room-type", "", "room type to query")
	maxPrice := flag.String("max-price", "", "exclusive upper price bound")
	sweep := flag.Bool("sweep", false, "summarise every neighbourhood and room type below -max-price")
	serve := flag.Bool("serve", false, "serve the HTTP API")
	flag.Parse()

	cfg := config.Load()
	logger := utils.NewLoggerWithLevel(os.Stdout, utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Airbnb Listings Webmap starting ===")
	logger.Info("Config: source %s | workers %d | http %s", cfg.ListingsSource, cfg.MaxConcurrency, cfg.HTTPAddr)

	src, err := newSource(cfg, logger)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	start := time.Now()
	listingStore, err := store.Load(src)
	if err != nil {
		logger.Error("Failed to load listings: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d listings from %s in %v (%d neighbourhoods, %d room types)",
		listingStore.Len(), src.Name(), time.Since(start),
		len(listingStore.DistinctNeighbourhoods()), len(listingStore.DistinctRoomTypes()))

	aggregator := services.NewAggregator(listingStore, logger)
	printer := services.NewReportPrinter()

	switch {
	case *serve:
		if err := runServer(cfg, api.NewHandler(aggregator, listingStore, listingStore.Len()), logger); err != nil {
			logger.Error("HTTP server failed: %v", err)
			os.Exit(1)
		}

	case *sweep:
		bound := float64(cfg.DefaultMaxPrice)
		if *maxPrice != "" {
			f, err := services.ParseFilter("", "", *maxPrice)
			if err != nil {
				logger.Error("%v", err)
				os.Exit(2)
			}
			bound = *f.MaxPrice
		}
		rows, err := services.NewSweepService(aggregator, listingStore, cfg.MaxConcurrency, logger).Run(bound)
		if err != nil {
			logger.Error("%v", err)
			os.Exit(2)
		}
		printer.PrintSweep(rows)

	default:
		result, err := aggregator.QueryRaw(*neighbourhood, *roomType, *maxPrice)
		var ife *models.InvalidFilterError
		if errors.As(err, &ife) {
			logger.Error("%v", err)
			os.Exit(2)
		}
		if err != nil {
			logger.Error("Query failed: %v", err)
			os.Exit(1)
		}
		printer.Print(result)
	}
}

func newSource(cfg *config.Config, logger *utils.Logger) (storage.ListingSource, error) {
	switch cfg.ListingsSource {
	case config.SourceCSV:
		return storage.NewCSVSource(cfg.ListingsCSVPath), nil
	case config.SourcePostgres:
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   time.Duration(cfg.RetryBaseMs) * time.Millisecond,
			Logger:      logger,
		}
		return storage.NewPostgresSource(cfg.DSN(), cfg.ListingsTable, cfg.ListingsOrderBy, retry), nil
	default:
		return nil, fmt.Errorf("unknown LISTINGS_SOURCE %q (want %s or %s)",
			cfg.ListingsSource, config.SourceCSV, config.SourcePostgres)
	}
}

func runServer(cfg *config.Config, h *api.Handler, logger *utils.Logger) error {
	srv := api.NewServer(cfg.HTTPAddr, h, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Warn("Received %s, shutting down...", sig)
	case err := <-errCh:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}
