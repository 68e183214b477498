// Package sqlerr specifically handles database driver errors.
//
// It parses the driver specific error values (MySQL error numbers,
// Postgres SQLSTATE codes) into one Code so logs can be filtered by
// failure kind regardless of the configured driver.
package sqlerr

import "fmt"

// Code is the driver independent category of a database error.
type Code string

const (
	Other               Code = "other"
	NotFound            Code = "not_found"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	ConnectionFailure   Code = "connection_failure"
)

// Error is a classified driver error.
type Error struct {
	Code Code

	// Driver is "mysql", "postgres", "sqlite", or "" when unknown.
	Driver string

	// DatabaseCode is the raw number or SQLSTATE reported by the server.
	DatabaseCode string
	Message      string

	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	if e.DatabaseCode == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%s %s): %s", e.Code, e.Driver, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
