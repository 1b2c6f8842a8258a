package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"eventrent/internal/database"
	"eventrent/internal/pkg/clock"
	"eventrent/internal/repository"
)

// Holds expire lazily: readers already ignore lapsed ones. This job only
// settles their stored status so admin listings and metrics stay honest.
// Run it from cron.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	holds := repository.NewHoldRepository(db)
	n, err := holds.MarkExpired(context.Background(), clock.NewSystem().Now())
	if err != nil {
		log.Fatalf("holds cleanup failed: %v", err)
	}

	log.Printf("holds cleanup completed: expired=%d", n)
}
