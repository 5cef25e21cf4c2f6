package nba

import (
	"context"
	"net/url"
)

type CommonAllPlayer struct {
	PersonID         *float64
	DisplayLastFirst *string
	DisplayFirstLast *string
	RosterStatus     *float64
	FromYear         *string
	ToYear           *string
	PlayerCode       *string
	PlayerSlug       *string
	TeamID           *float64
	TeamCity         *string
	TeamName         *string
	TeamAbbreviation *string
	TeamCode         *string
	TeamSlug         *string
	GamesPlayedFlag  *string
}

// CommonAllPlayers lists players for season. With currentSeasonOnly set the
// feed returns just the players on a roster this season.
func (c *Client) CommonAllPlayers(ctx context.Context, season string, currentSeasonOnly bool) ([]CommonAllPlayer, error) {
	only := "0"
	if currentSeasonOnly {
		only = "1"
	}
	params := url.Values{}
	params.Set("LeagueID", "00")
	params.Set("Season", season)
	params.Set("IsOnlyCurrentSeason", only)

	rs, err := c.get(ctx, "commonallplayers", params)
	if err != nil {
		return nil, err
	}

	rows := rs.rows()
	players := make([]CommonAllPlayer, len(rows))
	for i, r := range rows {
		players[i] = CommonAllPlayer{
			PersonID:         maybe[float64](r.get("PERSON_ID")),
			DisplayLastFirst: maybe[string](r.get("DISPLAY_LAST_COMMA_FIRST")),
			DisplayFirstLast: maybe[string](r.get("DISPLAY_FIRST_LAST")),
			RosterStatus:     maybe[float64](r.get("ROSTERSTATUS")),
			FromYear:         maybe[string](r.get("FROM_YEAR")),
			ToYear:           maybe[string](r.get("TO_YEAR")),
			PlayerCode:       maybe[string](r.get("PLAYERCODE")),
			PlayerSlug:       maybe[string](r.get("PLAYER_SLUG")),
			TeamID:           maybe[float64](r.get("TEAM_ID")),
			TeamCity:         maybe[string](r.get("TEAM_CITY")),
			TeamName:         maybe[string](r.get("TEAM_NAME")),
			TeamAbbreviation: maybe[string](r.get("TEAM_ABBREVIATION")),
			TeamCode:         maybe[string](r.get("TEAM_CODE")),
			TeamSlug:         maybe[string](r.get("TEAM_SLUG")),
			GamesPlayedFlag:  maybe[string](r.get("GAMES_PLAYED_FLAG")),
		}
	}
	return players, nil
}
