package handler

// HTMLDateLayout is the value format of an <input type="date">.
const HTMLDateLayout = "2006-01-02"

// EmploymentForm is the data-entry form as posted by the browser. Years stays
// a string so an empty field can mean "derive from the start date".
type EmploymentForm struct {
	Title     string `form:"title" label:"Title" validate:"notblank"`
	Level     string `form:"level" label:"Supervisory Level" validate:"required"`
	StartDate string `form:"start_date" label:"Start Date" validate:"required,datetime=2006-01-02"`
	Years     string `form:"years" label:"Years" validate:"omitempty,numeric"`
}

// EmploymentRequest is the JSON body for creating an employment record.
type EmploymentRequest struct {
	Title     string   `json:"title" label:"Title" validate:"notblank"`
	Level     string   `json:"level" label:"Supervisory Level" validate:"required"`
	StartDate string   `json:"start_date" label:"Start Date" validate:"required,datetime=2006-01-02"`
	Years     *float64 `json:"years" label:"Years" validate:"omitempty,gte=0"`
}

type AddressRequest struct {
	Number     int    `json:"number" label:"Number" validate:"gte=0"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

// PersonRequest is the JSON body for previewing a person with positions.
type PersonRequest struct {
	FirstName string              `json:"first_name" label:"First Name" validate:"notblank"`
	LastName  string              `json:"last_name" label:"Last Name" validate:"notblank"`
	Address   *AddressRequest     `json:"address" validate:"omitempty"`
	Positions []EmploymentRequest `json:"positions" validate:"dive"`
}
