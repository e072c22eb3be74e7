package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"craigsbot/internal/bot"
	"craigsbot/internal/config"
	"craigsbot/internal/database"
	"craigsbot/internal/fetch"
	"craigsbot/internal/notify"
	"craigsbot/internal/parser"
)

func main() {
	numbers := flag.String("numbers", "", "comma-separated phone numbers that should receive SMS notifications, e.g. +18005551234,+18005554321")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *numbers != "" {
		cfg.Source.Recipients = config.SplitNumbers(*numbers)
	}

	// Initialize the listing store
	store, err := database.NewStore(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Optional Redis seen-cache in front of the store
	var cache bot.SeenCache
	if cfg.Redis.Addr != "" {
		seenCache, err := database.NewSeenCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Source.Name)
		if err != nil {
			log.Fatalf("Failed to initialize seen-cache: %v", err)
		}
		defer seenCache.Close()
		cache = seenCache
	}

	transport := notify.NewTwilioTransport(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
	notifier := notify.NewNotifier(transport, cfg.Twilio.From, cfg.Source.Recipients)

	b := bot.New(cfg,
		fetch.NewFetcher(cfg.Source, cfg.Scan.FetchTimeout),
		parser.NewExtractor(cfg.Source),
		bot.NewDedupGate(store, cache),
		notifier,
	)

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping...")
		cancel()
	}()

	log.Println("craigsbot lives!")
	b.Run(ctx)
	log.Println("Shutting down gracefully...")
}
