package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEmployment(t *testing.T, title string, level SupervisoryLevel) *Employment {
	t.Helper()
	e, err := NewEmployment(title, level, date(2020, time.October, 24), WithYears(3.6), testClock())
	require.NoError(t, err)
	return e
}

func TestDefaultPerson(t *testing.T) {
	p := DefaultPerson()

	assert.Equal(t, "Unknown", p.FirstName())
	assert.Equal(t, "Unknown", p.LastName())
	assert.Nil(t, p.ResidentAddress())
	assert.Equal(t, 0, p.PositionCount())
	assert.Empty(t, p.Positions())
	assert.Equal(t, "Unknown Unknown", p.FullName())
	assert.Equal(t, "Unknown,Unknown,", p.String())
}

func TestNewPerson_ShouldBuildFullPerson(t *testing.T) {
	address := NewResidentAddress(12, "Main St", "Springfield", "IL", "62701")
	positions := []*Employment{
		mustEmployment(t, "Clerk", Entry),
		mustEmployment(t, "SAS Lead", TeamLeader),
	}

	p, err := NewPerson(" Ada ", "Lovelace", positions, &address)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", p.FullName())
	assert.Equal(t, 2, p.PositionCount())
	assert.Equal(t, "Ada,Lovelace,12,Main St,Springfield,IL,62701", p.String())
	require.NotNil(t, p.ResidentAddress())
	assert.Equal(t, address, *p.ResidentAddress())

	got := p.Positions()
	assert.Equal(t, "Clerk", got[0].Title())
	assert.Equal(t, "SAS Lead", got[1].Title())
}

func TestNewPerson_ShouldNormalizeNilPositions(t *testing.T) {
	p, err := NewPerson("Ada", "Lovelace", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, p.PositionCount())
	assert.NotNil(t, p.Positions())
}

func TestNewPerson_ShouldRejectInvalidInput(t *testing.T) {
	testCases := map[string]struct {
		first, last string
		positions   []*Employment
		kind        error
		message     string
	}{
		"blank first name": {first: " ", last: "Lovelace", kind: ErrMissingValue, message: "First name is required."},
		"blank last name":  {first: "Ada", last: "", kind: ErrMissingValue, message: "Last name is required."},
		"nil position": {
			first: "Ada", last: "Lovelace",
			positions: []*Employment{nil},
			kind:      ErrMissingValue,
			message:   "No employment data provided.",
		},
		"duplicate level": {
			first: "Ada", last: "Lovelace",
			positions: []*Employment{mustEmployment(t, "Clerk", Entry), mustEmployment(t, "Intern", Entry)},
			kind:      ErrDuplicateLevel,
			message:   "The person already has that level of employment. Promote them!",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			p, err := NewPerson(tc.first, tc.last, tc.positions, nil)

			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tc.kind)
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestPerson_AddEmployment(t *testing.T) {
	p := DefaultPerson()

	require.NoError(t, p.AddEmployment(mustEmployment(t, "SAS Lead", TeamLeader)))
	assert.Equal(t, 1, p.PositionCount())

	t.Run("duplicate level keeps count", func(t *testing.T) {
		err := p.AddEmployment(mustEmployment(t, "Other Lead", TeamLeader))

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateLevel)
		assert.Contains(t, err.Error(), "already has that level")
		assert.Equal(t, 1, p.PositionCount())
	})

	t.Run("nil is missing data", func(t *testing.T) {
		err := p.AddEmployment(nil)

		assert.ErrorIs(t, err, ErrMissingValue)
		assert.Equal(t, 1, p.PositionCount())
	})

	t.Run("distinct level is appended", func(t *testing.T) {
		require.NoError(t, p.AddEmployment(mustEmployment(t, "Head", DepartmentHead)))

		got := p.Positions()
		require.Len(t, got, 2)
		assert.Equal(t, TeamLeader, got[0].Level())
		assert.Equal(t, DepartmentHead, got[1].Level())
	})
}

func TestPerson_ShouldOwnItsPositions(t *testing.T) {
	e := mustEmployment(t, "Clerk", Entry)
	p, err := NewPerson("Ada", "Lovelace", []*Employment{e}, nil)
	require.NoError(t, err)

	// Changing the caller's record must not let a second Entry slip in.
	require.NoError(t, e.SetRank(TeamMember))
	assert.Equal(t, Entry, p.Positions()[0].Level())

	out := p.Positions()
	require.NoError(t, out[0].SetRank(Supervisor))
	assert.Equal(t, Entry, p.Positions()[0].Level())

	err = p.AddEmployment(mustEmployment(t, "Intern", Entry))
	assert.ErrorIs(t, err, ErrDuplicateLevel)
}

func TestPerson_SetNames(t *testing.T) {
	p := DefaultPerson()

	require.NoError(t, p.SetFirstName(" Grace "))
	require.NoError(t, p.SetLastName("Hopper"))
	assert.Equal(t, "Grace Hopper", p.FullName())

	assert.ErrorIs(t, p.SetFirstName(""), ErrMissingValue)
	assert.ErrorIs(t, p.SetLastName("\t"), ErrMissingValue)
	assert.Equal(t, "Grace Hopper", p.FullName())
}

func TestResidentAddress(t *testing.T) {
	a := NewResidentAddress(221, "Baker Street", "London", "Greater London", "NW1 6XE")
	b := NewResidentAddress(221, "Baker Street", "London", "Greater London", "NW1 6XE")

	assert.Equal(t, "221,Baker Street,London,Greater London,NW1 6XE", a.String())
	assert.True(t, a == b)
	assert.Equal(t, 221, a.Number())
	assert.Equal(t, "NW1 6XE", a.PostalCode())
}

func TestSupervisoryLevel(t *testing.T) {
	for _, level := range SupervisoryLevels() {
		parsed, err := ParseSupervisoryLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, parsed)
		assert.True(t, level.IsValid())
	}

	assert.Equal(t, []SupervisoryLevel{Entry, TeamMember, TeamLeader, Supervisor, DepartmentHead}, SupervisoryLevels())
	assert.Equal(t, 2, int(TeamLeader))
	assert.False(t, SupervisoryLevel(5).IsValid())
	assert.Equal(t, "SupervisoryLevel(5)", SupervisoryLevel(5).String())

	_, err := ParseSupervisoryLevel("teamleader")
	assert.ErrorIs(t, err, ErrInvalidEnumeration)
}

func TestParseSupervisoryLevel_NumericCodes(t *testing.T) {
	parsed, err := ParseSupervisoryLevel("2")
	require.NoError(t, err)
	assert.Equal(t, TeamLeader, parsed)

	for _, code := range []string{"5", "-1", "2.0"} {
		_, err := ParseSupervisoryLevel(code)
		assert.ErrorIs(t, err, ErrInvalidEnumeration, code)
	}

	e, err := ParseEmployment("SAS Lead,2,Oct 24 2020,3.6", testClock())
	require.NoError(t, err)
	assert.Equal(t, "SAS Lead,TeamLeader,Oct 24 2020,3.6", e.String())
}

func TestRecordError(t *testing.T) {
	_, err := ParseEmployment("broken", testClock())
	re := RecordError{Line: 3, Raw: "broken", Err: err}

	assert.Equal(t, "Record Error: 3: Invalid record format: broken", re.Error())
	assert.ErrorIs(t, re, ErrFormat)
}
