package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hoopstats/outcome"
	"hoopstats/stats"
	"hoopstats/teams"
	"hoopstats/utils"

	"github.com/labstack/echo/v4"
)

type RosterState struct {
	Ready       bool
	Players     int
	RefreshedAt time.Time
	Error       string
}

type State struct {
	Teams     []string
	Selectors []string
	Roster    RosterState
}

type PlayerState struct {
	Team      string
	Players   []string
	Selectors []string
	Warning   string
	Error     string
}

type StatsState struct {
	Team    string
	Player  string
	Seasons string
	Result  *stats.Result
	Warning string
	Error   string
}

func (a *app) rosterState() RosterState {
	rs := RosterState{
		Ready:       a.roster.Ready(),
		Players:     a.roster.Len(),
		RefreshedAt: a.roster.RefreshedAt(),
	}
	if !rs.Ready {
		rs.Error = "Failed to fetch player data after multiple attempts. Please check your network connection."
	}
	return rs
}

func (a *app) index(c echo.Context) error {
	state := &State{
		Teams:     teams.DisplayNames(),
		Selectors: stats.Selectors(),
		Roster:    a.rosterState(),
	}
	return c.Render(200, "index", state)
}

func (a *app) players(c echo.Context) error {
	team := c.FormValue("team")
	state := &PlayerState{Team: teams.Display(team), Selectors: stats.Selectors()}

	switch {
	case !a.roster.Ready():
		state.Error = a.rosterState().Error
	case team == "":
		state.Warning = "Select a team."
	default:
		state.Players = a.roster.PlayersByTeam(team)
		if len(state.Players) == 0 {
			state.Warning = "No players available for the selected team. Please choose a different team."
		}
	}
	return c.Render(200, "player-options", state)
}

func (a *app) statsPage(c echo.Context) error {
	state := &StatsState{
		Team:    teams.Display(c.FormValue("team")),
		Player:  c.FormValue("player"),
		Seasons: a.seasonsLabel(),
	}

	res, err := a.compute(c.Request().Context(), c.FormValue("team"), state.Player, c.FormValue("stat"), c.FormValue("threshold"))
	if err != nil {
		state.Warning, state.Error = a.report(err)
		return c.Render(200, "stats", state)
	}
	state.Result = res
	return c.Render(200, "stats", state)
}

func (a *app) refreshRoster(c echo.Context) error {
	if err := a.roster.Refresh(c.Request().Context()); err != nil {
		log.Println(err)
	}
	return c.Render(200, "roster-status", a.rosterState())
}

type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (a *app) apiStats(c echo.Context) error {
	res, err := a.compute(c.Request().Context(), c.QueryParam("team"), c.Param("name"), c.QueryParam("stat"), c.QueryParam("threshold"))
	if err != nil {
		kind := outcome.KindOf(err)
		a.report(err)
		status := http.StatusInternalServerError
		switch {
		case kind == outcome.NoData:
			status = http.StatusNotFound
		case kind.Warning():
			status = http.StatusUnprocessableEntity
		case kind == outcome.TransientFetch:
			status = http.StatusBadGateway
		}
		return c.JSON(status, map[string]any{"error": apiError{Kind: kind.String(), Message: outcome.UserMessage(err)}})
	}
	return c.JSON(200, res)
}

func (a *app) health(c echo.Context) error {
	rs := a.rosterState()
	status := "ok"
	if !rs.Ready {
		status = "degraded"
	}
	cache := "ok"
	if a.cache != nil {
		if err := a.cache.Ping(c.Request().Context()); err != nil {
			log.Println(err)
			cache = "unavailable"
			status = "degraded"
		}
	}
	return c.JSON(200, map[string]any{
		"status":       status,
		"cache":        cache,
		"players":      rs.Players,
		"refreshed_at": rs.RefreshedAt,
	})
}

// compute looks the player up, loads their game log and summarizes it.
// Fetch failures come back as TransientFetch; everything after the fetch is
// a compute failure.
func (a *app) compute(ctx context.Context, team, player, stat, rawThreshold string) (*stats.Result, error) {
	threshold, err := parseThreshold(rawThreshold)
	if err != nil {
		return nil, err
	}
	if _, _, err := stats.ParseSelector(stat); err != nil {
		return nil, err
	}
	if !a.roster.Ready() {
		return nil, outcome.New(outcome.TransientFetch, "stats", "player roster is unavailable")
	}
	entry, ok := a.roster.Lookup(player)
	if !ok {
		return nil, outcome.Errorf(outcome.InvalidInput, "stats", "Unknown player %q.", player)
	}
	if team != "" && teams.Resolve(team) != entry.TeamName {
		return nil, outcome.Errorf(outcome.InvalidInput, "stats", "%s does not play for the %s.", player, teams.Display(team))
	}

	rows, err := a.gamelogs.Fetch(ctx, entry.ID, a.cfg.Seasons)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, outcome.Errorf(outcome.NoData, "stats", "No game data available for %s.", player)
	}

	return stats.Compute(rows, stat, stats.Options{
		Threshold:   threshold,
		Simulations: a.cfg.Simulations,
		Rand:        a.newRand(),
	})
}

func parseThreshold(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, outcome.New(outcome.InvalidInput, "stats", "Threshold must be a number.")
	}
	if t < 0 {
		return nil, outcome.New(outcome.InvalidInput, "stats", "Threshold must not be negative.")
	}
	return &t, nil
}

// report splits err into a warning or an error message for the page.
// Unexpected errors are logged in full and only summarized to the user.
func (a *app) report(err error) (warning, errMsg string) {
	kind := outcome.KindOf(err)
	switch {
	case kind.Warning():
		return outcome.UserMessage(err), ""
	case kind == outcome.TransientFetch:
		log.Println(err)
	default:
		log.Println(utils.ErrorWithTrace(err))
	}
	return "", outcome.UserMessage(err)
}

func (a *app) seasonsLabel() string {
	if len(a.cfg.Seasons) == 0 {
		return "entire career"
	}
	return strings.Join(a.cfg.Seasons, ", ")
}
