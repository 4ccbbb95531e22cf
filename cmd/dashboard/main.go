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
	"github.com/asharan/futbot/internal/venue"
	"github.com/asharan/futbot/internal/webui"
)

func main() {
	listen := flag.String("listen", "", "Listen address (overrides config)")
	configFile := flag.String("config", "", "Path to YAML config file")
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

	srv := webui.New(cfg, client, webui.Options{})
	log.Printf("Dashboard listening on %s (symbol %s, testnet=%v)", cfg.ListenAddr, cfg.Symbol, cfg.Testnet)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Dashboard stopped: %v", err)
	}
}
