package db

import (
	"context"
	"embed"
	"errors"
	"time"

	"hoopstats/utils"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// MemoryDSN keeps the cache in process memory for the life of the session.
const MemoryDSN = "file:hoopstats?mode=memory&cache=shared"

//go:embed migrations/*.sql
var migrations embed.FS

// GameLogRow is one cached game. Rows are keyed by ID, not game id, since
// the feed does not always send one.
type GameLogRow struct {
	ID       int64    `db:"id"`
	PlayerID int      `db:"player_id"`
	Season   string   `db:"season"`
	GameID   string   `db:"game_id"`
	GameDate string   `db:"game_date"`
	Matchup  string   `db:"matchup"`
	MIN      *float64 `db:"min"`
	FGM      *float64 `db:"fgm"`
	FGA      *float64 `db:"fga"`
	FG3M     *float64 `db:"fg3m"`
	REB      *float64 `db:"reb"`
	AST      *float64 `db:"ast"`
	STL      *float64 `db:"stl"`
	BLK      *float64 `db:"blk"`
	TOV      *float64 `db:"tov"`
	PTS      *float64 `db:"pts"`
}

// DB is the game-log cache. It holds a single connection so an in-memory
// database lives as long as the DB does.
type DB struct {
	conn *sqlx.DB
}

func Open(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	conn, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, utils.ErrorWithTrace(err)
	}
	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) RunMigrations() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	driver, err := sqlite3.WithInstance(d.conn.DB, &sqlite3.Config{})
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	// closing m would close the shared connection, so it is left open
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return utils.ErrorWithTrace(err)
	}
	return nil
}

// ReplaceGameLog stores rows as the complete game log for the player and
// season, stamped with fetchedAt. An empty rows slice is cached too.
func (d *DB) ReplaceGameLog(ctx context.Context, playerID int, season string, rows []GameLogRow, fetchedAt time.Time) error {
	tx, err := d.conn.BeginTxx(ctx, nil)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM game_logs WHERE player_id = ? AND season = ?`, playerID, season); err != nil {
		return utils.ErrorWithTrace(err)
	}

	query := `
		INSERT INTO game_logs (
			player_id, season, game_id, game_date, matchup,
			min, fgm, fga, fg3m, reb, ast, stl, blk, tov, pts
		) VALUES (
			:player_id, :season, :game_id, :game_date, :matchup,
			:min, :fgm, :fga, :fg3m, :reb, :ast, :stl, :blk, :tov, :pts
		)
	`
	for _, r := range rows {
		r.PlayerID, r.Season = playerID, season
		if _, err := tx.NamedExecContext(ctx, query, r); err != nil {
			return utils.ErrorWithTrace(err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`REPLACE INTO game_log_fetches (player_id, season, fetched_at) VALUES (?, ?, ?)`,
		playerID, season, fetchedAt.Unix()); err != nil {
		return utils.ErrorWithTrace(err)
	}

	return tx.Commit()
}

// SelectGameLog returns the cached game log if it was fetched at or after
// notBefore. found is false when there is no usable cache entry.
func (d *DB) SelectGameLog(ctx context.Context, playerID int, season string, notBefore time.Time) (rows []GameLogRow, found bool, err error) {
	var fetchedAt []int64
	err = d.conn.SelectContext(ctx, &fetchedAt,
		`SELECT fetched_at FROM game_log_fetches WHERE player_id = ? AND season = ?`, playerID, season)
	if err != nil {
		return nil, false, utils.ErrorWithTrace(err)
	}
	if len(fetchedAt) == 0 || fetchedAt[0] < notBefore.Unix() {
		return nil, false, nil
	}

	rows = []GameLogRow{}
	err = d.conn.SelectContext(ctx, &rows,
		`SELECT * FROM game_logs WHERE player_id = ? AND season = ? ORDER BY game_date ASC, id ASC`,
		playerID, season)
	if err != nil {
		return nil, false, utils.ErrorWithTrace(err)
	}
	return rows, true, nil
}

// EvictStale drops every cached game log fetched before cutoff.
func (d *DB) EvictStale(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := d.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM game_logs WHERE EXISTS (
			SELECT 1 FROM game_log_fetches f
			WHERE f.player_id = game_logs.player_id
			AND f.season = game_logs.season
			AND f.fetched_at < ?
		)`, cutoff.Unix()); err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM game_log_fetches WHERE fetched_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	return n, tx.Commit()
}

func (d *DB) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}
