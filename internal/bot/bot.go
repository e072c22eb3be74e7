package bot

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"craigsbot/internal/config"
	"craigsbot/internal/models"
	"craigsbot/internal/notify"
	"craigsbot/internal/parser"
)

// Fetcher retrieves the raw search-results document for one scan.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Extractor turns a raw document into listings.
type Extractor interface {
	Extract(body string) ([]*models.Listing, error)
}

// Notifier delivers one formatted message to the recipient set.
type Notifier interface {
	Send(message string)
}

// Bot drives repeated scans of one source: fetch, extract, dedup,
// notify, then wait a randomized delay and go again.
type Bot struct {
	src       config.SourceConfig
	fetcher   Fetcher
	extractor Extractor
	gate      *DedupGate
	notifier  Notifier

	minDelay   int
	maxDelay   int
	debugParse bool

	rand *rand.Rand
}

// New wires a bot from its pipeline stages
func New(cfg *config.Config, fetcher Fetcher, extractor Extractor, gate *DedupGate, notifier Notifier) *Bot {
	return &Bot{
		src:        cfg.Source,
		fetcher:    fetcher,
		extractor:  extractor,
		gate:       gate,
		notifier:   notifier,
		minDelay:   cfg.Scan.MinDelayMinutes,
		maxDelay:   cfg.Scan.MaxDelayMinutes,
		debugParse: cfg.Scan.DebugParse,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run scans immediately, then keeps rescheduling until the context is
// canceled. The next scan is armed when the current one starts, not when
// it completes, so a slow scan may overlap the next one; the store's
// unique key keeps a racing duplicate from being notified twice.
func (b *Bot) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := b.Scan(ctx); err != nil {
				log.Printf("Scan failed: %v", err)
			}
		}()

		delay := b.nextDelay()
		log.Printf("Will check again in %d minutes", delay)

		timer := time.NewTimer(time.Duration(delay) * time.Minute)
		select {
		case <-ctx.Done():
			timer.Stop()
			wg.Wait()
			return
		case <-timer.C:
		}
	}
}

// nextDelay draws a whole-minute delay uniformly from the inclusive
// configured range.
func (b *Bot) nextDelay() int {
	return b.rand.Intn(b.maxDelay-b.minDelay+1) + b.minDelay
}

// Scan performs one fetch-extract-dedupe-notify cycle. Any failure is
// returned for logging; it never affects the next scheduled scan.
func (b *Bot) Scan(ctx context.Context) error {
	log.Printf("Searching %s for apartments", b.src.Name)

	body, err := b.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	listings, err := b.extractor.Extract(body)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}
	log.Printf("Found %d listings", len(listings))

	if len(listings) == 0 && b.debugParse {
		parser.DebugDocument(body)
	}

	notified := 0
	for _, listing := range listings {
		if !b.gate.Admit(ctx, listing) {
			continue
		}
		message := notify.Format(listing)
		log.Print(message)
		b.notifier.Send(message)
		notified++
	}

	log.Printf("Scan complete: %d listings, %d new", len(listings), notified)
	return nil
}
