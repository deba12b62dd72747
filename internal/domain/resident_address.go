package domain

import (
	"strconv"
	"strings"
)

// ResidentAddress is an immutable postal address. Fields are not validated.
type ResidentAddress struct {
	number     int
	street     string
	city       string
	region     string
	postalCode string
}

func NewResidentAddress(number int, street, city, region, postalCode string) ResidentAddress {
	return ResidentAddress{
		number:     number,
		street:     street,
		city:       city,
		region:     region,
		postalCode: postalCode,
	}
}

func (a ResidentAddress) Number() int        { return a.number }
func (a ResidentAddress) Street() string     { return a.street }
func (a ResidentAddress) City() string       { return a.city }
func (a ResidentAddress) Region() string     { return a.region }
func (a ResidentAddress) PostalCode() string { return a.postalCode }

// String joins the fields with commas in declaration order.
func (a ResidentAddress) String() string {
	return strings.Join([]string{
		strconv.Itoa(a.number),
		a.street,
		a.city,
		a.region,
		a.postalCode,
	}, ",")
}
