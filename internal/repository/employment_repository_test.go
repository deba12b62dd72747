package repository

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employment_history/internal/domain"
	"github.com/locvowork/employment_history/internal/storage"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

var today = fixedClock(time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC))

type failingStore struct{ err error }

func (s failingStore) ReadAllLines(context.Context) ([]string, error) { return nil, s.err }
func (s failingStore) AppendLine(context.Context, string) error       { return s.err }
func (s failingStore) Truncate(context.Context) error                 { return s.err }

func newFileRepository(t *testing.T) (domain.EmploymentRepository, *storage.LineFile) {
	t.Helper()
	store := storage.NewLineFile(filepath.Join(t.TempDir(), "Data", "Employments.csv"))
	return NewEmploymentRepository(store, today), store
}

func TestEmploymentRepository_AppendThenLoadAll(t *testing.T) {
	ctx := context.Background()
	repo, _ := newFileRepository(t)

	e, err := domain.NewEmployment("SAS Lead", domain.TeamLeader,
		time.Date(2020, time.October, 24, 0, 0, 0, 0, time.UTC), domain.WithYears(3.6), domain.WithClock(today))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, e))

	got, recordErrs, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, recordErrs)
	require.Len(t, got, 1)
	assert.Equal(t, e.String(), got[0].String())
}

func TestEmploymentRepository_LoadAll_CollectsRecordErrors(t *testing.T) {
	ctx := context.Background()
	repo, store := newFileRepository(t)

	for _, line := range []string{
		"SAS Lead,TeamLeader,Oct 24 2020,3.6",
		"garbage",
		"Clerk,Boss,Jan 02 2024,1",
		"Clerk,Entry,Jan 02 2024,1",
		"Future,Entry,Jan 02 2030,1",
	} {
		require.NoError(t, store.AppendLine(ctx, line))
	}

	got, recordErrs, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "SAS Lead", got[0].Title())
	assert.Equal(t, "Clerk", got[1].Title())

	require.Len(t, recordErrs, 3)
	assert.Equal(t, 2, recordErrs[0].Line)
	assert.Equal(t, "garbage", recordErrs[0].Raw)
	assert.ErrorIs(t, recordErrs[0], domain.ErrFormat)
	assert.Equal(t, 3, recordErrs[1].Line)
	assert.ErrorIs(t, recordErrs[1], domain.ErrInvalidEnumeration)
	assert.Equal(t, 5, recordErrs[2].Line)
	assert.ErrorIs(t, recordErrs[2], domain.ErrTemporalConstraint)
}

func TestEmploymentRepository_LoadAll_ReadsVeryLongRecords(t *testing.T) {
	ctx := context.Background()
	repo, _ := newFileRepository(t)
	start := time.Date(2020, time.October, 24, 0, 0, 0, 0, time.UTC)

	clerk, err := domain.NewEmployment("Clerk", domain.Entry, start, domain.WithYears(1), domain.WithClock(today))
	require.NoError(t, err)
	longTitle := strings.Repeat("T", 70000)
	long, err := domain.NewEmployment(longTitle, domain.TeamLeader, start, domain.WithYears(2), domain.WithClock(today))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, clerk))
	require.NoError(t, repo.Append(ctx, long))

	got, recordErrs, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, recordErrs)
	require.Len(t, got, 2)
	assert.Equal(t, "Clerk", got[0].Title())
	assert.Equal(t, longTitle, got[1].Title())
}

func TestEmploymentRepository_LoadAll_EmptyStore(t *testing.T) {
	repo, _ := newFileRepository(t)

	got, recordErrs, err := repo.LoadAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, recordErrs)
}

func TestEmploymentRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo, store := newFileRepository(t)
	require.NoError(t, store.AppendLine(ctx, "Clerk,Entry,Jan 02 2024,1"))

	require.NoError(t, repo.Clear(ctx))

	got, _, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmploymentRepository_WrapsStoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	repo := NewEmploymentRepository(failingStore{err: boom}, today)

	_, _, err := repo.LoadAll(ctx)
	assert.ErrorIs(t, err, boom)

	err = repo.Append(ctx, domain.DefaultEmployment(domain.WithClock(today)))
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, repo.Clear(ctx), boom)
	assert.ErrorIs(t, repo.Append(ctx, nil), domain.ErrMissingValue)
}
