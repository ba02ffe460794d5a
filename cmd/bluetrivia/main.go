package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bluetrivia/bluetrivia/internal/app"
	"github.com/bluetrivia/bluetrivia/internal/config"
	"github.com/bluetrivia/bluetrivia/internal/logger"
	"github.com/bluetrivia/bluetrivia/pkg/bsky"
	"github.com/bluetrivia/bluetrivia/pkg/tmdb"
)

var (
	version = "dev"
)

func main() {
	configPath := flag.String("config", "bluetrivia.yaml", "Path to YAML config file")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	adminAddr := flag.String("admin", "", "Admin API listen address (overrides config)")
	logLevel := flag.String("loglevel", "", "Log level: debug, info, warn, error (overrides config)")
	manual := flag.Bool("manual", false, "Advance rounds on ENTER instead of timers")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `BlueTrivia - Social Trivia Bot

Usage:
  bluetrivia [options]

Options:
  -config string   Path to YAML config file (default "bluetrivia.yaml")
  -db string       SQLite database path (overrides config)
  -admin string    Admin API listen address, e.g. :8081 (overrides config)
  -loglevel str    Log level: debug, info, warn, error (overrides config)
  -manual          Advance rounds on ENTER instead of timers
  -version         Show version and exit
  -help            Show this help message

Environment:
  BSKY_HANDLE      Bot account handle (overrides config)
  BSKY_PASSWORD    Bot account app password (overrides config)
  TMDB_API_KEY     TMDB API key; movie rounds are disabled without one

Examples:
  bluetrivia                           # Run with bluetrivia.yaml
  bluetrivia -db /data/trivia.db       # Use custom database path
  bluetrivia -admin :8081              # Serve the admin API on :8081
  bluetrivia -manual -loglevel debug   # Local testing

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("bluetrivia %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// Flag and environment overrides
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *adminAddr != "" {
		cfg.Admin.Addr = *adminAddr
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *manual {
		cfg.Game.ManualAdvance = true
	}
	if handle := os.Getenv("BSKY_HANDLE"); handle != "" {
		cfg.Bsky.Handle = handle
	}
	if password := os.Getenv("BSKY_PASSWORD"); password != "" {
		cfg.Bsky.Password = password
	}
	if key := os.Getenv("TMDB_API_KEY"); key != "" {
		cfg.TMDB.APIKey = key
	}

	if cfg.Bsky.Handle == "" || cfg.Bsky.Password == "" {
		log.Fatal("Bluesky credentials are required (config or BSKY_HANDLE/BSKY_PASSWORD)")
	}

	appLog := logger.NewWithOptions(os.Stdout, logger.ParseLevel(cfg.Log.Level), cfg.Log.JSON)

	feed := bsky.NewHTTPClient(cfg.Bsky.Host, cfg.Bsky.Handle, cfg.Bsky.Password, appLog)

	var movies tmdb.Client
	if cfg.TMDB.APIKey != "" {
		movies = tmdb.NewHTTPClient(cfg.TMDB.APIKey, appLog)
	} else {
		appLog.Warn("No TMDB API key, movie rounds disabled")
	}

	a, err := app.New(cfg, appLog, feed, movies)
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLog.Info("Starting", "version", version, "handle", cfg.Bsky.Handle, "db", cfg.DBPath)
	if err := a.Run(ctx); err != nil {
		log.Fatal(err)
	}
	appLog.Info("Shut down cleanly")
}
