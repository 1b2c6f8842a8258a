package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"eventrent/internal/database"
	"eventrent/internal/domain"
	"eventrent/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "eventrent.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	packs := repository.NewPackRepository(db)
	ctx := context.Background()

	created := 0
	for _, p := range seedPacks() {
		if _, err := packs.GetByKey(ctx, p.Key); err == nil {
			log.Printf("pack %s already seeded, skipping", p.Key)
			continue
		} else if !errors.Is(err, repository.ErrPackNotFound) {
			log.Fatalf("pack lookup failed: %v", err)
		}
		pack := p
		if err := packs.Create(ctx, &pack); err != nil {
			log.Fatalf("seed pack %s failed: %v", p.Key, err)
		}
		created++
	}

	log.Printf("seed completed: packs_created=%d", created)
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedPacks() []domain.Pack {
	return []domain.Pack{
		{
			Key:           domain.PackConference,
			Name:          "Conference pack",
			BasePrice:     money("500.00"),
			IncludedDays:  1,
			ExtraDayPrice: money("120.00"),
			TotalQuantity: 2,
			DefaultItems: []domain.PackItem{
				{Label: "Projector", Quantity: 1},
				{Label: "PA system", Quantity: 1},
				{Label: "Wired microphone", Quantity: 4},
			},
			Catalog: []domain.CatalogItem{
				{Label: "Extra speakers", UnitPrice: money("50.00")},
				{Label: "Stage lights", UnitPrice: money("75.00")},
				{Label: "Wireless microphone", UnitPrice: money("15.00")},
			},
		},
		{
			Key:           domain.PackParty,
			Name:          "Party pack",
			BasePrice:     money("800.00"),
			IncludedDays:  1,
			ExtraDayPrice: money("150.00"),
			TotalQuantity: 3,
			DefaultItems: []domain.PackItem{
				{Label: "Sound system", Quantity: 1},
				{Label: "Light rig", Quantity: 1},
				{Label: "Fog machine", Quantity: 1},
			},
			Catalog: []domain.CatalogItem{
				{Label: "LED bar", UnitPrice: money("40.00")},
				{Label: "DJ booth", UnitPrice: money("120.00")},
				{Label: "Dance floor panel", UnitPrice: money("25.00")},
			},
		},
		{
			Key:           domain.PackWedding,
			Name:          "Wedding pack",
			BasePrice:     money("1200.00"),
			IncludedDays:  2,
			ExtraDayPrice: money("200.00"),
			TotalQuantity: 1,
			DefaultItems: []domain.PackItem{
				{Label: "Ceremony arch", Quantity: 1},
				{Label: "Banquet tables", Quantity: 10},
				{Label: "Chiavari chairs", Quantity: 80},
			},
			Catalog: []domain.CatalogItem{
				{Label: "Chair cover", UnitPrice: money("3.00")},
				{Label: "Centerpiece", UnitPrice: money("12.00")},
				{Label: "Photo backdrop", UnitPrice: money("90.00")},
			},
		},
	}
}
