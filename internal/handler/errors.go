package handler

import (
	"errors"
	"net/http"

	"github.com/locvowork/employment_history/internal/domain"
)

// domainErrorMapping pairs an error kind with the prefix shown to the user and
// the HTTP status the API answers with. Order matters: a format error that
// wraps an enumeration error reports as a format error.
var domainErrorMapping = []struct {
	kind   error
	prefix string
	status int
}{
	{domain.ErrFormat, "Data Format", http.StatusBadRequest},
	{domain.ErrMissingValue, "Missing Data", http.StatusBadRequest},
	{domain.ErrInvalidRange, "Data Range", http.StatusUnprocessableEntity},
	{domain.ErrInvalidEnumeration, "Data Value", http.StatusUnprocessableEntity},
	{domain.ErrTemporalConstraint, "Data Value", http.StatusUnprocessableEntity},
	{domain.ErrDuplicateLevel, "Data Value", http.StatusConflict},
}

// mapDomainError returns the status and user-facing prefix for err.
// Unrecognised errors are system errors.
func mapDomainError(err error) (int, string) {
	for _, m := range domainErrorMapping {
		if errors.Is(err, m.kind) {
			return m.status, m.prefix
		}
	}
	return http.StatusInternalServerError, "System error"
}

// userMessage formats err the way the data-entry page shows it, e.g.
// "Missing Data: Title must be provided."
func userMessage(err error) string {
	_, prefix := mapDomainError(err)
	return prefix + ": " + err.Error()
}
