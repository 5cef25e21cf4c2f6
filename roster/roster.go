package roster

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"hoopstats/nba"
	"hoopstats/outcome"
	"hoopstats/retry"
	"hoopstats/teams"

	"go.uber.org/atomic"
)

const DefaultAttempts = 5

type Feed interface {
	CommonAllPlayers(ctx context.Context, season string, currentSeasonOnly bool) ([]nba.CommonAllPlayer, error)
}

type Entry struct {
	ID       int    `json:"id"`
	TeamName string `json:"team_name"`
}

type snapshot struct {
	players     map[string]Entry
	refreshedAt time.Time
}

// Roster owns the active-player map. Refresh builds a new map and swaps it
// in whole; readers only ever see a complete map.
type Roster struct {
	feed     Feed
	season   string
	attempts int
	delay    time.Duration
	current  *atomic.Pointer[snapshot]

	// OnWarning receives a message for every failed fetch attempt.
	OnWarning func(msg string)
}

func New(feed Feed, season string, attempts int, delay time.Duration) *Roster {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	return &Roster{
		feed:     feed,
		season:   season,
		attempts: attempts,
		delay:    delay,
		current:  atomic.NewPointer[snapshot](nil),
	}
}

// Refresh fetches the current-season players and replaces the roster. If
// every attempt fails the previous roster is left in place and a
// TransientFetch error is returned.
func (r *Roster) Refresh(ctx context.Context) error {
	policy := retry.Policy{
		Attempts: r.attempts,
		Delay:    r.delay,
		OnFailure: func(attempt int, err error) {
			msg := fmt.Sprintf("Attempt %d of %d: Error fetching player data: %v", attempt, r.attempts, err)
			log.Println(msg)
			if r.OnWarning != nil {
				r.OnWarning(msg)
			}
		},
	}

	players, err := retry.Do(ctx, policy, func(ctx context.Context) ([]nba.CommonAllPlayer, error) {
		return r.feed.CommonAllPlayers(ctx, r.season, true)
	})
	if err != nil {
		return &outcome.Error{
			Kind: outcome.TransientFetch,
			Op:   "roster.Refresh",
			Msg:  "failed to fetch player data after multiple attempts",
			Err:  err,
		}
	}

	next := Build(players)
	r.current.Store(&snapshot{players: next, refreshedAt: time.Now()})
	log.Printf("roster refreshed: %d players", len(next))
	return nil
}

// Build keeps only players whose team resolves to a known franchise.
func Build(players []nba.CommonAllPlayer) map[string]Entry {
	m := make(map[string]Entry, len(players))
	for _, p := range players {
		if p.PersonID == nil || p.DisplayFirstLast == nil || p.TeamName == nil || *p.TeamName == "" {
			continue
		}
		team := teams.Resolve(*p.TeamName)
		if !teams.IsCanonical(team) {
			continue
		}
		m[*p.DisplayFirstLast] = Entry{ID: int(*p.PersonID), TeamName: team}
	}
	return m
}

func (r *Roster) load() *snapshot {
	if s := r.current.Load(); s != nil {
		return s
	}
	return &snapshot{}
}

// Ready reports whether a roster has been loaded. An empty roster is a
// failure state of its own, separate from a team having no players.
func (r *Roster) Ready() bool {
	return len(r.load().players) > 0
}

func (r *Roster) Len() int {
	return len(r.load().players)
}

func (r *Roster) RefreshedAt() time.Time {
	return r.load().refreshedAt
}

func (r *Roster) Lookup(player string) (Entry, bool) {
	e, ok := r.load().players[player]
	return e, ok
}

// PlayersByTeam returns the sorted names of players on team, which may be
// given by any alias.
func (r *Roster) PlayersByTeam(team string) []string {
	want := teams.Resolve(team)
	names := []string{}
	for name, e := range r.load().players {
		if e.TeamName == want {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
