package daily

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/motus-games/motus/internal/dictionary"
	"github.com/motus-games/motus/internal/logging"
)

// WordIndex maps a calendar day to a deterministic dictionary index: the
// byte sum of the UTC date string modulo the dictionary size. Every process
// computes the same word for the same day.
func WordIndex(date time.Time, dictLen int) int {
	if dictLen <= 0 {
		return 0
	}

	key := date.UTC().Format("2006-01-02")
	var seed int
	for _, c := range []byte(key) {
		seed += int(c)
	}

	return seed % dictLen
}

// Rotator holds the current word of the day and recomputes it on a fixed
// interval so the word flips when the calendar day rolls over.
type Rotator struct {
	dict     *dictionary.Dictionary
	interval time.Duration
	current  atomic.Value // string
}

func NewRotator(dict *dictionary.Dictionary, interval time.Duration) *Rotator {
	r := &Rotator{dict: dict, interval: interval}
	r.current.Store(r.compute(time.Now()))
	return r
}

// Word returns the current word of the day.
func (r *Rotator) Word() string {
	return r.current.Load().(string)
}

func (r *Rotator) compute(now time.Time) string {
	return r.dict.Word(WordIndex(now, r.dict.Len()))
}

// Run recomputes the word on every tick until ctx is cancelled. Replacement
// is a single atomic store, readers never block.
func (r *Rotator) Run(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("daily.rotator")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			prev := r.Word()
			next := r.compute(now)
			if next != prev {
				r.current.Store(next)
				logger.Infof("word of the day updated (length: %d)", len([]rune(next)))
			}
		}
	}
}
