package domain

import (
	"fmt"
	"strconv"
)

// SupervisoryLevel is the rank of responsibility attached to a position.
type SupervisoryLevel int

const (
	Entry SupervisoryLevel = iota
	TeamMember
	TeamLeader
	Supervisor
	DepartmentHead
)

var supervisoryLevelNames = map[SupervisoryLevel]string{
	Entry:          "Entry",
	TeamMember:     "TeamMember",
	TeamLeader:     "TeamLeader",
	Supervisor:     "Supervisor",
	DepartmentHead: "DepartmentHead",
}

// SupervisoryLevels returns the declared levels from lowest to highest.
func SupervisoryLevels() []SupervisoryLevel {
	return []SupervisoryLevel{Entry, TeamMember, TeamLeader, Supervisor, DepartmentHead}
}

// IsValid reports whether l is one of the declared levels.
func (l SupervisoryLevel) IsValid() bool {
	_, ok := supervisoryLevelNames[l]
	return ok
}

// String returns the symbolic name used in persisted records.
func (l SupervisoryLevel) String() string {
	if name, ok := supervisoryLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("SupervisoryLevel(%d)", int(l))
}

// ParseSupervisoryLevel resolves a symbolic name such as "TeamLeader" or a
// numeric code such as "2". Either way the level must be declared.
func ParseSupervisoryLevel(name string) (SupervisoryLevel, error) {
	for level, n := range supervisoryLevelNames {
		if n == name {
			return level, nil
		}
	}
	if code, err := strconv.Atoi(name); err == nil && SupervisoryLevel(code).IsValid() {
		return SupervisoryLevel(code), nil
	}
	return 0, newValidationError(ErrInvalidEnumeration, "Supervisory level %q is not declared.", name)
}

func validateLevel(l SupervisoryLevel) error {
	if !l.IsValid() {
		return newValidationError(ErrInvalidEnumeration, "Supervisory level %d is invalid.", int(l))
	}
	return nil
}
