package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"hoopstats/assert"
)

func TestSchedulerRunsUntilCancelled(t *testing.T) {
	var runs atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(Task{
		Name:     "count",
		Interval: time.Millisecond,
		Run: func(ctx context.Context) error {
			if runs.Add(1) >= 3 {
				cancel()
			}
			return errors.New("logged, not fatal")
		},
	})

	s.Start(ctx)
	s.Wait()
	if runs.Load() < 3 {
		t.Errorf("expected at least 3 runs, got %d", runs.Load())
	}
}

func TestSchedulerSkipsDisabledTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	called := false
	s := NewScheduler(Task{Name: "off", Interval: 0, Run: func(context.Context) error {
		called = true
		return nil
	}})
	s.Start(ctx)
	cancel()
	s.Wait()
	assert.Equal(t, called, false)
}

type fakeEvicter struct {
	cutoff time.Time
}

func (f *fakeEvicter) EvictStale(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 2, nil
}

func TestGameLogJanitor(t *testing.T) {
	ev := &fakeEvicter{}
	task := GameLogJanitor(ev, time.Hour, time.Minute)
	assert.Equal(t, task.Interval, time.Minute)

	assert.NilError(t, task.Run(context.Background()))
	age := time.Since(ev.cutoff)
	if age < time.Hour || age > time.Hour+time.Minute {
		t.Errorf("expected cutoff about an hour ago, got %v", age)
	}

	assert.Equal(t, GameLogJanitor(ev, 0, time.Minute).Interval, time.Duration(0))
}

type fakeRefresher struct{ n int }

func (f *fakeRefresher) Refresh(ctx context.Context) error {
	f.n++
	return nil
}

func TestRosterRefreshTask(t *testing.T) {
	r := &fakeRefresher{}
	task := RosterRefresh(r, time.Hour)
	assert.Equal(t, task.Name, "roster-refresh")
	assert.NilError(t, task.Run(context.Background()))
	assert.Equal(t, r.n, 1)
}
