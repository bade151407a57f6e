package main

import (
	"context"
	"flag"
	"log"
	"time"

	"collablearn/internal/app"
	"collablearn/internal/catalog"
	"collablearn/internal/config"
	"collablearn/internal/database/migration"
)

func main() {
	pages := flag.Int("pages", 0, "catalog pages to import (overrides CATALOG_PAGES)")
	workers := flag.Int("workers", 0, "concurrent detail fetchers (overrides CATALOG_WORKERS)")
	headless := flag.Bool("headless", false, "force the headless browser fallback")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *pages > 0 {
		cfg.Importer.Pages = *pages
	}
	if *workers > 0 {
		cfg.Importer.Workers = *workers
	}
	if *headless {
		cfg.Importer.Headless = true
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	if cfg.Database.RunMigrations {
		migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer migCancel()
		r := migration.Runner{Dir: "migrations"}
		if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	imp := catalog.NewWorkshopImporter(c.DB, cfg.Importer, c.Cache, c.Logger)
	if err := imp.Run(ctx); err != nil {
		log.Fatalf("import failed: %v", err)
	}
}
