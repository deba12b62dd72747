package domain

import "context"

// EmploymentRepository defines the interface for employment record storage
type EmploymentRepository interface {
	Append(ctx context.Context, e *Employment) error

	// LoadAll returns every record that parsed, plus one RecordError per line
	// that did not. The error is reserved for I/O failures.
	LoadAll(ctx context.Context) ([]*Employment, []RecordError, error)

	Clear(ctx context.Context) error
}

// LineStore is the flat-file collaborator the repository writes through.
type LineStore interface {
	ReadAllLines(ctx context.Context) ([]string, error)
	AppendLine(ctx context.Context, line string) error
	Truncate(ctx context.Context) error
}
