package domain

import "strings"

const unknownName = "Unknown"

// Person owns an ordered list of positions, at most one per supervisory level.
// Employments passed in are copied, and Positions hands out copies, so callers
// cannot bypass the level rule by mutating a shared record.
type Person struct {
	firstName       string
	lastName        string
	residentAddress *ResidentAddress
	positions       []*Employment
}

// DefaultPerson returns "Unknown Unknown" with no address and no positions.
func DefaultPerson() *Person {
	return &Person{
		firstName: unknownName,
		lastName:  unknownName,
		positions: []*Employment{},
	}
}

// NewPerson validates the names and takes a copy of positions. A nil address
// means the person has none.
func NewPerson(firstName, lastName string, positions []*Employment, address *ResidentAddress) (*Person, error) {
	p := &Person{positions: []*Employment{}}
	if err := p.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := p.SetLastName(lastName); err != nil {
		return nil, err
	}
	if address != nil {
		a := *address
		p.residentAddress = &a
	}
	for _, e := range positions {
		if err := p.AddEmployment(e); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Person) FirstName() string {
	return p.firstName
}

func (p *Person) LastName() string {
	return p.lastName
}

func (p *Person) SetFirstName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return newValidationError(ErrMissingValue, "First name is required.")
	}
	p.firstName = trimmed
	return nil
}

func (p *Person) SetLastName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return newValidationError(ErrMissingValue, "Last name is required.")
	}
	p.lastName = trimmed
	return nil
}

// ResidentAddress returns the address, or nil when none was given.
func (p *Person) ResidentAddress() *ResidentAddress {
	if p.residentAddress == nil {
		return nil
	}
	a := *p.residentAddress
	return &a
}

func (p *Person) FullName() string {
	return p.firstName + " " + p.lastName
}

// AddEmployment appends a copy of e unless a position with the same level is
// already held.
func (p *Person) AddEmployment(e *Employment) error {
	if e == nil {
		return newValidationError(ErrMissingValue, "No employment data provided.")
	}
	for _, held := range p.positions {
		if held.Level() == e.Level() {
			return newValidationError(ErrDuplicateLevel, "The person already has that level of employment. Promote them!")
		}
	}
	p.positions = append(p.positions, e.Clone())
	return nil
}

// Positions returns copies of the held positions in insertion order.
func (p *Person) Positions() []*Employment {
	out := make([]*Employment, len(p.positions))
	for i, e := range p.positions {
		out[i] = e.Clone()
	}
	return out
}

func (p *Person) PositionCount() int {
	return len(p.positions)
}

// String renders first,last,address. A missing address renders as empty.
func (p *Person) String() string {
	address := ""
	if p.residentAddress != nil {
		address = p.residentAddress.String()
	}
	return p.firstName + "," + p.lastName + "," + address
}
