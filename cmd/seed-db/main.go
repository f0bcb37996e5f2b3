package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"

	"github.com/xenking/skyshop/internal/seed"
	"github.com/xenking/skyshop/internal/storage/memory"
	"github.com/xenking/skyshop/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	var (
		databaseURL string
		seedFile    string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or SKYSHOP_DATABASE_URL / DATABASE_URL env)")
	flag.StringVar(&seedFile, "seed-file", "", "catalog seed document, optionally gzip compressed (embedded catalog when empty)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("SKYSHOP_DATABASE_URL")
	}
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url, SKYSHOP_DATABASE_URL or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, seedFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, seedFile string) error {
	var src seed.Source = seed.EmbeddedSource{}
	if seedFile != "" {
		src = seed.FileSource{Path: seedFile}
	}

	slog.Info("reading seed", slog.String("path", seedFile))
	set, err := src.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "load seed")
	}

	// Reject invalid entries before touching the database.
	if err := seed.Populate(ctx, set, memory.NewCatalog()); err != nil {
		return errors.Wrap(err, "validate seed")
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	slog.Info("writing catalog",
		slog.Int("products", len(set.Products)),
		slog.Int("articles", len(set.Articles)),
	)
	return postgres.NewCatalogRepository(pool).Replace(ctx, set)
}
