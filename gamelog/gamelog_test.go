package gamelog

import (
	"context"
	"errors"
	"testing"
	"time"

	"hoopstats/assert"
	"hoopstats/db"
	"hoopstats/nba"
	"hoopstats/outcome"
)

func f(v float64) *float64 { return &v }
func s(v string) *string { return &v }

func date(v string) *time.Time {
	d, _ := time.Parse(time.DateOnly, v)
	return &d
}

type fakeFetcher struct {
	calls   map[string]int
	games   map[string][]nba.PlayerGameLogGame
	failErr error
}

func (ff *fakeFetcher) PlayerGameLog(ctx context.Context, playerID int, season string) ([]nba.PlayerGameLogGame, error) {
	if ff.calls == nil {
		ff.calls = map[string]int{}
	}
	ff.calls[season]++
	if ff.failErr != nil {
		return nil, ff.failErr
	}
	return ff.games[season], nil
}

type memCache struct {
	logs    map[string][]db.GameLogRow
	fetched map[string]time.Time
}

func newMemCache() *memCache {
	return &memCache{logs: map[string][]db.GameLogRow{}, fetched: map[string]time.Time{}}
}

func (m *memCache) SelectGameLog(ctx context.Context, playerID int, season string, notBefore time.Time) ([]db.GameLogRow, bool, error) {
	at, ok := m.fetched[season]
	if !ok || at.Before(notBefore) {
		return nil, false, nil
	}
	return m.logs[season], true, nil
}

func (m *memCache) ReplaceGameLog(ctx context.Context, playerID int, season string, rows []db.GameLogRow, fetchedAt time.Time) error {
	m.logs[season] = rows
	m.fetched[season] = fetchedAt
	return nil
}

func sampleFetcher() *fakeFetcher {
	return &fakeFetcher{games: map[string][]nba.PlayerGameLogGame{
		"2024-25": {
			{GameID: s("b"), GameDate: date("2024-10-26"), Matchup: s("NYK vs. IND"), PTS: f(30)},
		},
		"2023-24": {
			{GameID: s("a"), GameDate: date("2024-04-14"), Matchup: s("NYK vs. CHI"), PTS: f(40), REB: f(5)},
		},
	}}
}

func TestFetchConcatenatesSeasons(t *testing.T) {
	svc := NewService(sampleFetcher(), nil, 0)

	rows, err := svc.Fetch(context.Background(), 1628973, []string{"2024-25", "2023-24"})
	assert.NilError(t, err)
	assert.Equal(t, len(rows), 2)
	assert.Equal(t, rows[0].GameID, "b")
	assert.Equal(t, rows[1].Matchup, "NYK vs. CHI")
	assert.Equal(t, *rows[1].REB, 5.0)
	assert.Equal(t, rows[1].GameDate.Format(time.DateOnly), "2024-04-14")
}

func TestFetchCareerWhenNoSeasons(t *testing.T) {
	ff := sampleFetcher()
	svc := NewService(ff, nil, 0)

	rows, err := svc.Fetch(context.Background(), 1, nil)
	assert.NilError(t, err)
	assert.Equal(t, len(rows), 0)
	assert.Equal(t, ff.calls[nba.SeasonAll], 1)
}

func TestFetchInvalidSeason(t *testing.T) {
	ff := sampleFetcher()
	svc := NewService(ff, nil, 0)

	_, err := svc.Fetch(context.Background(), 1, []string{"2024"})
	assert.Equal(t, outcome.KindOf(err), outcome.InvalidInput)
	assert.Equal(t, len(ff.calls), 0)
}

func TestFetchErrorPropagates(t *testing.T) {
	ff := &fakeFetcher{failErr: outcome.Wrap(outcome.TransientFetch, "nba.playergamelog", errors.New("timeout"))}
	svc := NewService(ff, newMemCache(), time.Hour)

	rows, err := svc.Fetch(context.Background(), 1, []string{"2024-25"})
	if rows != nil {
		t.Errorf("expected no rows on failure")
	}
	assert.Equal(t, outcome.KindOf(err), outcome.TransientFetch)
}

func TestFetchUsesCacheWhileFresh(t *testing.T) {
	ff := sampleFetcher()
	cache := newMemCache()
	svc := NewService(ff, cache, time.Hour)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	first, err := svc.Fetch(context.Background(), 1, []string{"2024-25"})
	assert.NilError(t, err)
	second, err := svc.Fetch(context.Background(), 1, []string{"2024-25"})
	assert.NilError(t, err)

	assert.Equal(t, ff.calls["2024-25"], 1)
	assert.Equal(t, len(second), len(first))
	assert.Equal(t, second[0].GameDate, first[0].GameDate)
	assert.Equal(t, *second[0].PTS, 30.0)

	now = now.Add(2 * time.Hour)
	_, err = svc.Fetch(context.Background(), 1, []string{"2024-25"})
	assert.NilError(t, err)
	assert.Equal(t, ff.calls["2024-25"], 2)
}

func TestFetchCachedMatchesUncached(t *testing.T) {
	cache, err := db.Open("file:gamelog_cached_matches?mode=memory&cache=shared")
	assert.NilError(t, err)
	t.Cleanup(func() { cache.Close() })
	assert.NilError(t, cache.RunMigrations())

	ff := &fakeFetcher{games: map[string][]nba.PlayerGameLogGame{
		"2024-25": {
			{GameDate: date("2024-10-22"), PTS: f(10)},
			{GameDate: date("2024-10-24"), PTS: f(20)},
			{GameDate: date("2024-10-26"), PTS: f(20)},
			{PTS: f(5)},
		},
	}}
	svc := NewService(ff, cache, time.Hour)

	fresh, err := svc.Fetch(context.Background(), 1, []string{"2024-25"})
	assert.NilError(t, err)
	cached, err := svc.Fetch(context.Background(), 1, []string{"2024-25"})
	assert.NilError(t, err)

	assert.Equal(t, ff.calls["2024-25"], 1)
	assert.Equal(t, len(fresh), 4)
	assert.Equal(t, len(cached), len(fresh))

	var freshSum, cachedSum float64
	for i := range fresh {
		freshSum += *fresh[i].PTS
		cachedSum += *cached[i].PTS
	}
	assert.Equal(t, cachedSum, freshSum)
}
