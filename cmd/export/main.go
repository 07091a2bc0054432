// Command export writes the occupancies of the last N weeks to a CSV file,
// with times rendered in each room's configured timezone.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"roompla/internal/config"
	"roompla/internal/database"
	"roompla/internal/export"
	"roompla/internal/repository"
)

func main() {
	out := flag.String("out", "occupancies.csv", "path of the CSV file to write")
	weeks := flag.Int("weeks", 4, "number of weeks to look back from today")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Full days: from midnight N weeks back until the end of today, UTC.
	now := time.Now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	start := end.AddDate(0, 0, -7*(*weeks)).Truncate(24 * time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := repository.NewOccupancyRepo(db).ListAllInRange(ctx, start, end)
	if err != nil {
		log.Fatalf("load occupancies: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, entries); err != nil {
		log.Fatalf("write csv: %v", err)
	}
	log.Printf("exported %d occupancies to %s", len(entries), *out)
}
