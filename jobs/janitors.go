package jobs

import (
	"context"
	"log"
	"time"
)

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Evicter interface {
	EvictStale(ctx context.Context, cutoff time.Time) (int64, error)
}

func RosterRefresh(r Refresher, interval time.Duration) Task {
	return Task{
		Name:     "roster-refresh",
		Interval: interval,
		Run:      r.Refresh,
	}
}

// GameLogJanitor drops cached game logs older than ttl, checking every
// interval.
func GameLogJanitor(cache Evicter, ttl, interval time.Duration) Task {
	if ttl <= 0 {
		interval = 0
	}
	return Task{
		Name:     "game-log-janitor",
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := cache.EvictStale(ctx, time.Now().Add(-ttl))
			if err != nil {
				return err
			}
			if n > 0 {
				log.Printf("evicted %d stale game logs", n)
			}
			return nil
		},
	}
}
