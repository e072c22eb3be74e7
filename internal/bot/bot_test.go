package bot

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"craigsbot/internal/config"
	"craigsbot/internal/models"
)

type fakeFetcher struct {
	body string
	err  error
}

func (f *fakeFetcher) Fetch(context.Context) (string, error) { return f.body, f.err }

type fakeExtractor struct {
	listings []*models.Listing
	err      error
}

func (e *fakeExtractor) Extract(string) ([]*models.Listing, error) { return e.listings, e.err }

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Send(message string) { n.messages = append(n.messages, message) }

func TestNextDelayRange(t *testing.T) {
	b := &Bot{minDelay: 10, maxDelay: 30, rand: rand.New(rand.NewSource(1))}

	sawMin, sawMax := false, false
	for i := 0; i < 1000; i++ {
		d := b.nextDelay()
		if d < 10 || d > 30 {
			t.Fatalf("delay %d outside [10, 30]", d)
		}
		sawMin = sawMin || d == 10
		sawMax = sawMax || d == 30
	}
	if !sawMin || !sawMax {
		t.Error("delay range should be inclusive of both bounds")
	}
}

func TestScanNotifiesOnlyNewListings(t *testing.T) {
	store := newFakeStore()
	store.known[1] = true
	notifier := &fakeNotifier{}

	b := &Bot{
		src:     config.SourceConfig{Name: "sfbay"},
		fetcher: &fakeFetcher{body: "<html></html>"},
		extractor: &fakeExtractor{listings: []*models.Listing{
			{ID: 1, URL: "http://x/1", PostedOn: "2024-08-29"},
			{ID: 2, URL: "http://x/2", PostedOn: "2024-08-29"},
		}},
		gate:     NewDedupGate(store, nil),
		notifier: notifier,
	}

	if err := b.Scan(context.Background()); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifier.messages))
	}
	if notifier.messages[0] != "I found an apartment: http://x/2" {
		t.Errorf("message = %q", notifier.messages[0])
	}
	if store.inserts != 1 {
		t.Errorf("got %d inserts, want 1", store.inserts)
	}
}

func TestScanFetchError(t *testing.T) {
	notifier := &fakeNotifier{}
	b := &Bot{
		src:       config.SourceConfig{Name: "sfbay"},
		fetcher:   &fakeFetcher{err: errors.New("connection refused")},
		extractor: &fakeExtractor{},
		gate:      NewDedupGate(newFakeStore(), nil),
		notifier:  notifier,
	}

	if err := b.Scan(context.Background()); err == nil {
		t.Fatal("Scan should surface the fetch error")
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("no notification should go out on a failed fetch, got %d", len(notifier.messages))
	}
}

func TestScanExtractError(t *testing.T) {
	b := &Bot{
		src:       config.SourceConfig{Name: "sfbay"},
		fetcher:   &fakeFetcher{body: "not html"},
		extractor: &fakeExtractor{err: errors.New("malformed document")},
		gate:      NewDedupGate(newFakeStore(), nil),
		notifier:  &fakeNotifier{},
	}

	if err := b.Scan(context.Background()); err == nil {
		t.Fatal("Scan should surface the extract error")
	}
}
