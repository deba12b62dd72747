package repository

import (
	"context"
	"fmt"

	"github.com/locvowork/employment_history/internal/domain"
)

type employmentRepository struct {
	store domain.LineStore
	clock domain.Clock
}

// NewEmploymentRepository creates a new instance of EmploymentRepository backed
// by a line store. Parsed records use clock for their date checks.
func NewEmploymentRepository(store domain.LineStore, clock domain.Clock) domain.EmploymentRepository {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &employmentRepository{store: store, clock: clock}
}

func (r *employmentRepository) Append(ctx context.Context, e *domain.Employment) error {
	if e == nil {
		return fmt.Errorf("append employment: %w", domain.ErrMissingValue)
	}
	if err := r.store.AppendLine(ctx, e.String()); err != nil {
		return fmt.Errorf("append employment: %w", err)
	}
	return nil
}

func (r *employmentRepository) LoadAll(ctx context.Context) ([]*domain.Employment, []domain.RecordError, error) {
	lines, err := r.store.ReadAllLines(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load employments: %w", err)
	}

	employments := make([]*domain.Employment, 0, len(lines))
	var recordErrs []domain.RecordError
	for i, line := range lines {
		e, err := domain.ParseEmployment(line, domain.WithClock(r.clock))
		if err != nil {
			recordErrs = append(recordErrs, domain.RecordError{Line: i + 1, Raw: line, Err: err})
			continue
		}
		employments = append(employments, e)
	}
	return employments, recordErrs, nil
}

func (r *employmentRepository) Clear(ctx context.Context) error {
	if err := r.store.Truncate(ctx); err != nil {
		return fmt.Errorf("clear employments: %w", err)
	}
	return nil
}
