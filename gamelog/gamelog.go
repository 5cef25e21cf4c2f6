package gamelog

import (
	"context"
	"log"
	"time"

	"hoopstats/db"
	"hoopstats/nba"
	"hoopstats/outcome"
	"hoopstats/stats"
	"hoopstats/utils"
)

type Fetcher interface {
	PlayerGameLog(ctx context.Context, playerID int, season string) ([]nba.PlayerGameLogGame, error)
}

type Cache interface {
	SelectGameLog(ctx context.Context, playerID int, season string, notBefore time.Time) ([]db.GameLogRow, bool, error)
	ReplaceGameLog(ctx context.Context, playerID int, season string, rows []db.GameLogRow, fetchedAt time.Time) error
}

// Service loads game logs, serving them from the cache while fresh.
type Service struct {
	fetcher Fetcher
	cache   Cache
	ttl     time.Duration
	now     func() time.Time
}

// NewService returns a Service. A nil cache or a non-positive ttl disables
// caching.
func NewService(fetcher Fetcher, cache Cache, ttl time.Duration) *Service {
	return &Service{fetcher: fetcher, cache: cache, ttl: ttl, now: time.Now}
}

// Fetch returns the player's games across seasons, concatenated. No seasons
// means the player's entire career.
func (s *Service) Fetch(ctx context.Context, playerID int, seasons []string) ([]stats.Row, error) {
	if len(seasons) == 0 {
		seasons = []string{nba.SeasonAll}
	}
	for _, season := range seasons {
		if season != nba.SeasonAll && utils.IsInvalidSeason(season) {
			return nil, outcome.Errorf(outcome.InvalidInput, "gamelog", "invalid season %q", season)
		}
	}

	rows := []stats.Row{}
	for _, season := range seasons {
		seasonRows, err := s.season(ctx, playerID, season)
		if err != nil {
			return nil, err
		}
		rows = append(rows, seasonRows...)
	}
	return rows, nil
}

func (s *Service) season(ctx context.Context, playerID int, season string) ([]stats.Row, error) {
	caching := s.cache != nil && s.ttl > 0
	if caching {
		cached, found, err := s.cache.SelectGameLog(ctx, playerID, season, s.now().Add(-s.ttl))
		if err != nil {
			log.Println(utils.ErrorWithTrace(err))
		} else if found {
			return fromCache(cached), nil
		}
	}

	games, err := s.fetcher.PlayerGameLog(ctx, playerID, season)
	if err != nil {
		return nil, err
	}

	if caching {
		if err := s.cache.ReplaceGameLog(ctx, playerID, season, toCache(games), s.now()); err != nil {
			log.Println(utils.ErrorWithTrace(err))
		}
	}
	return fromFeed(games), nil
}

func fromFeed(games []nba.PlayerGameLogGame) []stats.Row {
	rows := make([]stats.Row, 0, len(games))
	for _, g := range games {
		r := stats.Row{
			MIN:  g.MIN,
			FGM:  g.FGM,
			FGA:  g.FGA,
			FG3M: g.FG3M,
			REB:  g.REB,
			AST:  g.AST,
			STL:  g.STL,
			BLK:  g.BLK,
			TOV:  g.TOV,
			PTS:  g.PTS,
		}
		if g.GameID != nil {
			r.GameID = *g.GameID
		}
		if g.GameDate != nil {
			r.GameDate = *g.GameDate
		}
		if g.Matchup != nil {
			r.Matchup = *g.Matchup
		}
		rows = append(rows, r)
	}
	return rows
}

func toCache(games []nba.PlayerGameLogGame) []db.GameLogRow {
	rows := make([]db.GameLogRow, 0, len(games))
	for _, r := range fromFeed(games) {
		date := ""
		if !r.GameDate.IsZero() {
			date = r.GameDate.Format(time.DateOnly)
		}
		rows = append(rows, db.GameLogRow{
			GameID:   r.GameID,
			GameDate: date,
			Matchup:  r.Matchup,
			MIN:      r.MIN,
			FGM:      r.FGM,
			FGA:      r.FGA,
			FG3M:     r.FG3M,
			REB:      r.REB,
			AST:      r.AST,
			STL:      r.STL,
			BLK:      r.BLK,
			TOV:      r.TOV,
			PTS:      r.PTS,
		})
	}
	return rows
}

func fromCache(cached []db.GameLogRow) []stats.Row {
	rows := make([]stats.Row, 0, len(cached))
	for _, c := range cached {
		r := stats.Row{
			GameID:  c.GameID,
			Matchup: c.Matchup,
			MIN:     c.MIN,
			FGM:     c.FGM,
			FGA:     c.FGA,
			FG3M:    c.FG3M,
			REB:     c.REB,
			AST:     c.AST,
			STL:     c.STL,
			BLK:     c.BLK,
			TOV:     c.TOV,
			PTS:     c.PTS,
		}
		if d, err := time.Parse(time.DateOnly, c.GameDate); err == nil {
			r.GameDate = d
		}
		rows = append(rows, r)
	}
	return rows
}
