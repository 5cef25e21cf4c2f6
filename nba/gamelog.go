package nba

import (
	"context"
	"log"
	"net/url"
	"strconv"
	"time"
)

// playergamelog formats GAME_DATE like "APR 14, 2024"
const gameDateLayout = "Jan 02, 2006"

type PlayerGameLogGame struct {
	SeasonID *string
	PlayerID *float64
	GameID   *string
	GameDate *time.Time
	Matchup  *string
	WL       *string
	MIN      *float64
	FGM      *float64
	FGA      *float64
	FG3M     *float64
	FTM      *float64
	REB      *float64
	AST      *float64
	STL      *float64
	BLK      *float64
	TOV      *float64
	PTS      *float64
}

// PlayerGameLog returns one row per regular-season game for the player in
// season. An empty season means the player's entire career. No games is
// not an error. A row whose date does not parse is kept with a nil GameDate.
func (c *Client) PlayerGameLog(ctx context.Context, playerID int, season string) ([]PlayerGameLogGame, error) {
	if season == "" {
		season = SeasonAll
	}
	params := url.Values{}
	params.Set("PlayerID", strconv.Itoa(playerID))
	params.Set("Season", season)
	params.Set("SeasonType", "Regular Season")
	params.Set("LeagueID", "00")

	rs, err := c.get(ctx, "playergamelog", params)
	if err != nil {
		return nil, err
	}

	rows := rs.rows()
	games := make([]PlayerGameLogGame, 0, len(rows))
	for _, r := range rows {
		g := PlayerGameLogGame{
			SeasonID: maybe[string](r.get("SEASON_ID")),
			PlayerID: maybe[float64](r.get("Player_ID")),
			GameID:   maybe[string](r.get("Game_ID")),
			Matchup:  maybe[string](r.get("MATCHUP")),
			WL:       maybe[string](r.get("WL")),
			MIN:      maybe[float64](r.get("MIN")),
			FGM:      maybe[float64](r.get("FGM")),
			FGA:      maybe[float64](r.get("FGA")),
			FG3M:     maybe[float64](r.get("FG3M")),
			FTM:      maybe[float64](r.get("FTM")),
			REB:      maybe[float64](r.get("REB")),
			AST:      maybe[float64](r.get("AST")),
			STL:      maybe[float64](r.get("STL")),
			BLK:      maybe[float64](r.get("BLK")),
			TOV:      maybe[float64](r.get("TOV")),
			PTS:      maybe[float64](r.get("PTS")),
		}
		if raw := maybe[string](r.get("GAME_DATE")); raw != nil {
			if d, err := parseGameDate(*raw); err == nil {
				g.GameDate = &d
			} else {
				log.Printf("game log row with bad date %q for player %d kept undated: %v", *raw, playerID, err)
			}
		}
		games = append(games, g)
	}
	return games, nil
}

func parseGameDate(raw string) (time.Time, error) {
	if d, err := time.Parse(gameDateLayout, raw); err == nil {
		return d, nil
	}
	if d, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		return d, nil
	}
	return time.Parse("2006-01-02", raw)
}
