package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"skillboard/domain/tabular"
	"skillboard/internal/config"
	"skillboard/internal/store"
	"skillboard/ui"
)

// seedDataset optionally preloads a CSV so the dashboard has data
// before the first admin upload. Development aid only.
func seedDataset(datasets *store.DatasetStore, path string) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		log.Printf("[seedDataset] cannot open %s: %v", path, err)
		return
	}
	defer f.Close()

	ds, err := tabular.Parse(f)
	if err != nil {
		log.Printf("[seedDataset] cannot parse %s: %v", path, err)
		return
	}
	datasets.Replace(ds)
	log.Printf("[seedDataset] loaded %s: %d records, %d columns", path, ds.RowCount(), ds.ColumnCount())
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	datasets := store.NewDatasetStore()
	seedDataset(datasets, appConfig.Data.SeedFile)

	server, err := ui.NewServer(appConfig, datasets)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Run(ctx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
