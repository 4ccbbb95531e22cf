package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/asharan/futbot/internal/config"
	"github.com/asharan/futbot/internal/execution"
	"github.com/asharan/futbot/internal/stream"
	"github.com/asharan/futbot/internal/venue"
	"github.com/asharan/futbot/internal/webui"
)

func main() {
	listen := flag.String("listen", "", "Listen address (overrides config)")
	configFile := flag.String("config", "", "Path to YAML config file")
	noStream := flag.Bool("no-stream", false, "Disable the live mark-price stream")
	flag.Parse()

	cfg := config.Load()
	if *configFile != "" {
		var err error
		cfg, err = config.LoadFile(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	api := venue.NewBinance(cfg.APIKey, cfg.APISecret, cfg.Testnet)
	client := execution.New(api)
	registry := execution.NewRegistry(client, cfg.Symbol)

	var ticker *stream.Ticker
	if !*noStream {
		ticker = stream.NewTicker(cfg.Symbol, cfg.Testnet)
		ticker.Start(ctx)
		defer ticker.Stop()
	}

	srv := webui.New(cfg, client, webui.Options{
		Pro:      true,
		Registry: registry,
		Chart:    api,
		Ticker:   ticker,
	})
	log.Printf("Pro dashboard listening on %s (symbol %s, testnet=%v)", cfg.ListenAddr, cfg.Symbol, cfg.Testnet)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Dashboard stopped: %v", err)
	}
}
