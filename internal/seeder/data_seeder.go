package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/locvowork/employment_history/internal/domain"
	"github.com/locvowork/employment_history/internal/logger"
)

type DataSeeder struct {
	repo  domain.EmploymentRepository
	store domain.LineStore
	clock domain.Clock
	rng   *rand.Rand
}

// NewDataSeeder writes valid records through repo and deliberately broken
// lines straight to store. seed fixes the generated sequence.
func NewDataSeeder(repo domain.EmploymentRepository, store domain.LineStore, clock domain.Clock, seed int64) *DataSeeder {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &DataSeeder{
		repo:  repo,
		store: store,
		clock: clock,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

var (
	titles = []string{
		"Clerk", "Analyst", "SAS Lead", "Data Engineer", "Night Shift Supervisor",
		"Head of Sales", "Support Technician", "Project Coordinator", "Accountant", "QA Lead",
	}
	brokenLines = []string{
		"Clerk,Entry,Oct 24 2020",
		"Analyst,Boss,Oct 24 2020,3.6",
		"Analyst,TeamMember,24/10/2020,3.6",
		"Analyst,TeamMember,Oct 24 2020,three",
		",Entry,Oct 24 2020,1",
		"Clerk,Entry,Jan 01 2999,0",
		"Clerk,Entry,Oct 24 2020,-4",
	}
)

const maxTenureDays = 30 * 365

// SeedData appends count generated employment records and then broken lines
// copies of malformed records for the report to flag.
func (ds *DataSeeder) SeedData(ctx context.Context, count, broken int) error {
	start := time.Now()
	logger.InfoLog(ctx, "seeding %d employment records and %d broken lines", count, broken)

	today := domain.DateOf(ds.clock.Now())
	levels := domain.SupervisoryLevels()

	for i := 0; i < count; i++ {
		startDate := today.AddDate(0, 0, -ds.rng.Intn(maxTenureDays))
		opts := []domain.EmploymentOption{domain.WithClock(ds.clock)}
		// Roughly half the records declare their own tenure.
		if ds.rng.Intn(2) == 0 {
			derived := domain.YearsBetween(startDate, today, 1)
			opts = append(opts, domain.WithYears(float64(ds.rng.Intn(int(derived*10)+1))/10))
		}

		e, err := domain.NewEmployment(titles[ds.rng.Intn(len(titles))], levels[ds.rng.Intn(len(levels))], startDate, opts...)
		if err != nil {
			return fmt.Errorf("failed to generate record %d: %w", i+1, err)
		}
		if err := ds.repo.Append(ctx, e); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
	}

	for i := 0; i < broken; i++ {
		if err := ds.store.AppendLine(ctx, brokenLines[i%len(brokenLines)]); err != nil {
			return fmt.Errorf("failed to insert broken line %d: %w", i+1, err)
		}
	}

	logger.InfoLog(ctx, "seeding done in %v", time.Since(start))
	return nil
}

// ClearData empties the data file.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	if err := ds.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	logger.InfoLog(ctx, "cleared employment records")
	return nil
}

// Presets
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
)

// GetPresetConfig returns the record and broken line counts for a preset.
func GetPresetConfig(preset SeedPreset) (records, broken int) {
	switch preset {
	case PresetSmall:
		return 10, 2
	case PresetMedium:
		return 100, 7
	case PresetLarge:
		return 1000, 20
	default:
		return 100, 7
	}
}
