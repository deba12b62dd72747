package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/locvowork/employment_history/internal/bootstrap"
	"github.com/locvowork/employment_history/internal/logger"
	"github.com/locvowork/employment_history/internal/seeder"
)

func main() {
	// Define flags
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	preset := flag.String("preset", "medium", "Data preset: small, medium, large")
	records := flag.Int("count", 0, "Number of valid records (overrides preset)")
	broken := flag.Int("broken", -1, "Number of malformed lines (overrides preset)")
	seed := flag.Int64("seed", 0, "Random seed, 0 uses the current time")

	flag.Parse()

	ctx := context.Background()

	fmt.Println("Employment Data Seeder")
	fmt.Println(strings.Repeat("=", 50))

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application", err)
		log.Fatal(err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	ds := seeder.NewDataSeeder(app.Repo, app.Store, app.Clock, *seed)

	switch *action {
	case "seed":
		performSeed(ctx, ds, *preset, *records, *broken)

	case "clear":
		performClear(ctx, ds, app.Store.Path())

	default:
		fmt.Printf("Unknown action: %s\n", *action)
		flag.PrintDefaults()
		return
	}

	fmt.Println("\nDone!")
}

func performSeed(ctx context.Context, ds *seeder.DataSeeder, preset string, records, broken int) {
	numRecords, numBroken := seeder.GetPresetConfig(seeder.SeedPreset(preset))
	if records > 0 {
		numRecords = records
	}
	if broken >= 0 {
		numBroken = broken
	}
	fmt.Printf("Seeding %d records and %d malformed lines (preset: %s)\n", numRecords, numBroken, preset)

	if err := ds.SeedData(ctx, numRecords, numBroken); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func performClear(ctx context.Context, ds *seeder.DataSeeder, path string) {
	fmt.Printf("This will delete all data in %s!\n", path)
	fmt.Print("Continue? (yes/no): ")

	var response string
	fmt.Scanln(&response)

	if response == "yes" {
		if err := ds.ClearData(ctx); err != nil {
			log.Fatalf("Clear failed: %v", err)
		}
	} else {
		fmt.Println("Cancelled.")
	}
}
