package jobs

import (
	"context"
	"log"
	"sync"
	"time"
)

type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs each task on its own ticker until the context is done.
// A task never overlaps itself; a slow run delays its next tick.
type Scheduler struct {
	Tasks []Task
	wg    sync.WaitGroup
}

func NewScheduler(tasks ...Task) *Scheduler {
	return &Scheduler{Tasks: tasks}
}

func (s *Scheduler) Start(ctx context.Context) {
	for _, t := range s.Tasks {
		if t.Interval <= 0 || t.Run == nil {
			log.Printf("job %s disabled", t.Name)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, t)
		}()
	}
}

func (s *Scheduler) loop(ctx context.Context, t Task) {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Run(ctx); err != nil {
				log.Printf("job %s: %v", t.Name, err)
			}
		}
	}
}

// Wait blocks until every started task has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
