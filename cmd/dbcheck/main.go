// Command dbcheck prints the oldest and newest videos known to the store,
// a quick sanity report on the collected published_at range.
package main

import (
	"context"
	"fmt"
	"os"

	"ytstats/internal/config"
	"ytstats/internal/db"
	"ytstats/internal/db/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbcheck: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "dbcheck: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbcheck: %v\n", err)
		os.Exit(1)
	}
	defer db.Close(pool)

	videos := repository.NewVideoMetadataRepository(pool)

	oldest, err := videos.OldestVideos(ctx, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbcheck: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Oldest videos:")
	for _, v := range oldest {
		fmt.Printf("[%s] %s\n", v.PublishedAt.Format("2006-01-02T15:04:05Z07:00"), v.Title)
	}

	newest, err := videos.NewestVideos(ctx, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbcheck: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nNewest videos:")
	for _, v := range newest {
		fmt.Printf("[%s] %s\n", v.PublishedAt.Format("2006-01-02T15:04:05Z07:00"), v.Title)
	}
}
