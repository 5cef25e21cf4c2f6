package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hoopstats/config"
	"hoopstats/db"
	"hoopstats/gamelog"
	"hoopstats/jobs"
	"hoopstats/nba"
	"hoopstats/roster"
	"hoopstats/utils"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed views/*.html
var views embed.FS

type Templates struct {
	templates *template.Template
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

func newTemplate() *Templates {
	return &Templates{
		templates: template.Must(template.New("").Funcs(template.FuncMap{
			"derefFloat64": utils.DerefFloat64,
			"fmt1":         func(f float64) string { return fmt.Sprintf("%.1f", f) },
			"date":         func(t time.Time) string { return t.Format("Jan 2, 2006") },
		}).ParseFS(views, "views/*.html")),
	}
}

type app struct {
	cfg      *config.Config
	roster   *roster.Roster
	gamelogs *gamelog.Service
	// cache is pinged by the health check when set
	cache interface{ Ping(ctx context.Context) error }
	// newRand seeds the fair line draws for each request
	newRand func() *rand.Rand
}

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	cache, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer cache.Close()
	if err := cache.RunMigrations(); err != nil {
		log.Fatal(err)
	}

	client, err := nba.NewClient(cfg.NBABaseURL, cfg.RequestTimeout, cfg.RequestsPerSec)
	if err != nil {
		log.Fatal(err)
	}

	a := &app{
		cfg:      cfg,
		roster:   roster.New(client, cfg.Season, cfg.RosterRetries, cfg.RetryDelay),
		gamelogs: gamelog.NewService(client, cache, cfg.CacheTTL),
		cache:    cache,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.roster.Refresh(ctx); err != nil {
		log.Printf("starting without a roster: %v", err)
	}

	scheduler := jobs.NewScheduler(
		jobs.RosterRefresh(a.roster, cfg.RosterRefresh),
		jobs.GameLogJanitor(cache, cfg.CacheTTL, cfg.CacheTTL),
	)
	scheduler.Start(ctx)

	e := newServer(a)
	e.Debug = !cfg.Prod

	go func() {
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Println(err)
			stop()
		}
	}()
	fmt.Println("The New York Knickerbockers are named after pants")

	<-ctx.Done()
	fmt.Println("\nshutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Println(err)
	}
	scheduler.Wait()
}

func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Renderer = newTemplate()

	e.GET("/", a.index)
	e.POST("/players", a.players)
	e.POST("/stats", a.statsPage)
	e.POST("/roster/refresh", a.refreshRoster)
	e.GET("/api/players/:name/stats", a.apiStats)
	e.GET("/healthz", a.health)

	return e
}
