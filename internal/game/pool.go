package game

import (
	"context"
	"time"

	"github.com/otterc137/GuessAnime/internal/catalog"
)

// PoolItem is one fetched image bound to a catalog entry. Items are never
// mutated after creation; the pool is a flat slice in fetch order.
type PoolItem struct {
	Image  string
	Accept []string
	Hint   string
}

// ImageSource yields every usable image URL for one anime. Satisfied by
// *jikan.Client; tests substitute a stub.
type ImageSource interface {
	AllImages(ctx context.Context, malID int) []string
}

// Builder assembles the image pool from the catalog. Entries are processed
// in small batches with a fixed pause between batches so the upstream API's
// rate limits are respected. Individual fetch failures contribute zero
// images; building never fails outright.
type Builder struct {
	Source     ImageSource
	BatchSize  int
	BatchDelay time.Duration
}

// NewBuilder creates a pool builder with the production batch settings.
func NewBuilder(source ImageSource) *Builder {
	return &Builder{
		Source:     source,
		BatchSize:  2,
		BatchDelay: 600 * time.Millisecond,
	}
}

// Build fetches images for every catalog entry and reports fractional
// progress through onProgress (0-90; the remaining range is reserved for
// round building). onProgress may be nil.
func (b *Builder) Build(ctx context.Context, entries []catalog.Entry, onProgress func(pct int)) []PoolItem {
	report := func(pct int) {
		if onProgress != nil {
			onProgress(pct)
		}
	}

	batchSize := b.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	var pool []PoolItem
	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		batch := entries[i:end]

		results := make([][]string, len(batch))
		done := make(chan struct{})
		for j, entry := range batch {
			go func(j, malID int) {
				results[j] = b.Source.AllImages(ctx, malID)
				done <- struct{}{}
			}(j, entry.MALID)
		}
		for range batch {
			<-done
		}
		close(done)

		for j, urls := range results {
			entry := batch[j]
			for _, url := range urls {
				pool = append(pool, PoolItem{
					Image:  url,
					Accept: entry.Accept,
					Hint:   entry.Title,
				})
			}
		}

		// Progress tracks batches completed, capped at 85 so the caller can
		// show round building as the final stretch.
		pct := (i + batchSize) * 85 / len(entries)
		if pct > 85 {
			pct = 85
		}
		report(pct)

		if end < len(entries) {
			select {
			case <-time.After(b.BatchDelay):
			case <-ctx.Done():
				report(90)
				return pool
			}
		}
	}

	report(90)
	return pool
}
