package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// BusinessError is a domain outcome the caller can act on: the Code names
// the precondition that failed, Field points at the offending input for
// validation failures, Detail carries context such as the refused
// transition.
type BusinessError struct {
	Code   string
	Field  string
	Detail string
}

func (e BusinessError) Error() string {
	msg := e.Code
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessDetail(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

// ErrValidation flags one malformed or missing input field.
func ErrValidation(code, field string) error {
	return BusinessError{Code: code, Field: field}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsExclusionConflict recognizes the Postgres exclusion constraint on
// (staff_id, tsrange) and unique violations as booking conflicts, so a race
// that slips past the FOR UPDATE re-check still maps to time_conflict.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
