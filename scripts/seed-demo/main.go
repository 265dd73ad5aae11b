package main

import (
	"context"
	"fmt"
	"os"

	"cartsync/config"
	listRepository "cartsync/internal/list/repository"
	listRepo "cartsync/internal/list/repository/supabase"
	"cartsync/internal/model"
	"cartsync/pkg/log"
	pkgSupabase "cartsync/pkg/supabase"
)

// Seeds a demo shopping list for a user token, handy for smoke-testing
// a fresh Supabase project.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/seed-demo/main.go <user-access-token>")
		os.Exit(1)
	}
	token := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	supabase := pkgSupabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ProjectRef, cfg.Supabase.AnonKey)
	repo := listRepo.New(supabase, logger)

	sc := model.Scope{AccessToken: token}

	budget := 50.0
	created, err := repo.CreateList(ctx, sc, listRepository.CreateListOptions{
		Title:     "Demo weekly shop",
		StoreName: "Corner Market",
		Budget:    &budget,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to create demo list: %v", err)
	}
	logger.Infof(ctx, "Created list %s", created.ID)

	seed := []listRepository.CreateItemOptions{
		{ListID: created.ID, Name: "Milk", Quantity: 2, Unit: "l", EstimatedPrice: 3.50, Status: model.StatusToBuy},
		{ListID: created.ID, Name: "Eggs", Quantity: 1, Unit: "dozen", EstimatedPrice: 4.00, Status: model.StatusToBuy},
		{ListID: created.ID, Name: "Bread", Quantity: 1, EstimatedPrice: 2.80, Status: model.StatusToBuy},
		{ListID: created.ID, Name: "Chips", Quantity: 1, EstimatedPrice: 2.00, Status: model.StatusToBuy},
	}
	for i, opt := range seed {
		opt.SortOrder = i
		if _, err := repo.CreateItem(ctx, sc, opt); err != nil {
			logger.Fatalf(ctx, "Failed to seed item %q: %v", opt.Name, err)
		}
		logger.Infof(ctx, "Seeded item %s", opt.Name)
	}

	logger.Infof(ctx, "Done. Activate list %s via POST /api/v1/lists/%s/activate", created.ID, created.ID)
}
