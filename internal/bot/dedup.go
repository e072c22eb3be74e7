package bot

import (
	"context"
	"errors"
	"log"

	"craigsbot/internal/database"
	"craigsbot/internal/models"
)

// ListingStore is the persistence surface the dedup gate needs.
type ListingStore interface {
	CountByID(ctx context.Context, id int) (int, error)
	Insert(ctx context.Context, rec models.Record) error
}

// SeenCache is an optional fast path consulted before the store.
type SeenCache interface {
	Seen(ctx context.Context, id int) (bool, error)
	MarkSeen(ctx context.Context, id int) error
}

// DedupGate records each listing id at most once and reports which
// listings are newly discovered.
type DedupGate struct {
	store ListingStore
	cache SeenCache // may be nil
}

// NewDedupGate creates a gate over the given store and optional cache
func NewDedupGate(store ListingStore, cache SeenCache) *DedupGate {
	return &DedupGate{store: store, cache: cache}
}

// Admit inserts the listing if its id is not yet known and reports
// whether it is newly discovered. A store failure means "not new": the
// listing stays absent from the store and is re-attempted on a later
// scan.
func (g *DedupGate) Admit(ctx context.Context, l *models.Listing) bool {
	if g.cache != nil {
		seen, err := g.cache.Seen(ctx, l.ID)
		if err != nil {
			log.Printf("Seen-cache check failed for listing %d: %v", l.ID, err)
		} else if seen {
			return false
		}
	}

	count, err := g.store.CountByID(ctx, l.ID)
	if err != nil {
		log.Printf("Failed to check listing %d: %v", l.ID, err)
		return false
	}
	if count > 0 {
		g.markSeen(ctx, l.ID)
		return false
	}

	if err := g.store.Insert(ctx, l.ToRecord()); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// Lost the check-then-insert race against an overlapping
			// scan; the winner already notified.
			log.Printf("Listing %d was inserted by a concurrent scan", l.ID)
			g.markSeen(ctx, l.ID)
		} else {
			log.Printf("Failed to insert listing %d: %v", l.ID, err)
		}
		return false
	}

	g.markSeen(ctx, l.ID)
	return true
}

func (g *DedupGate) markSeen(ctx context.Context, id int) {
	if g.cache == nil {
		return
	}
	if err := g.cache.MarkSeen(ctx, id); err != nil {
		log.Printf("Failed to mark listing %d seen: %v", id, err)
	}
}
