package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/khetisetu/search-backend/internal/adapters/database"
	"github.com/khetisetu/search-backend/internal/adapters/search"
	"github.com/khetisetu/search-backend/internal/infrastructure/clients/postgres"
	"github.com/khetisetu/search-backend/internal/infrastructure/clients/typesense"
	"github.com/khetisetu/search-backend/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collections before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	catalog := database.NewCatalogAdapter(pgClient)
	indexer := search.NewTypesenseIndexer(tsClient)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Println("Reset requested, deleting search collections")
		if err := indexer.ResetCollections(ctx); err != nil {
			return err
		}
	}

	if err := indexer.EnsureCollections(ctx); err != nil {
		return err
	}

	products, err := catalog.Products(ctx)
	if err != nil {
		return err
	}
	log.Printf("Indexing %d products...", len(products))
	for _, p := range products {
		if err := indexer.UpsertProduct(ctx, p); err != nil {
			log.Printf("Warning: failed to index product %s: %v", p.ID, err)
		}
	}

	questions, err := catalog.Questions(ctx)
	if err != nil {
		return err
	}
	log.Printf("Indexing %d questions...", len(questions))
	for _, q := range questions {
		if err := indexer.UpsertQuestion(ctx, q); err != nil {
			log.Printf("Warning: failed to index question %s: %v", q.ID, err)
		}
	}

	articles, err := catalog.Articles(ctx)
	if err != nil {
		return err
	}
	log.Printf("Indexing %d articles...", len(articles))
	for _, a := range articles {
		if err := indexer.UpsertArticle(ctx, a); err != nil {
			log.Printf("Warning: failed to index article %s: %v", a.ID, err)
		}
	}

	experts, err := catalog.Experts(ctx)
	if err != nil {
		return err
	}
	log.Printf("Indexing %d experts...", len(experts))
	for _, e := range experts {
		if err := indexer.UpsertExpert(ctx, e); err != nil {
			log.Printf("Warning: failed to index expert %s: %v", e.ID, err)
		}
	}

	return nil
}
