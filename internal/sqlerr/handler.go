package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"modernc.org/sqlite"

	"github.com/deppfellow/frases/internal/database"
)

// MySQL server error numbers.
const (
	mysqlDupEntry          = 1062
	mysqlBadNull           = 1048
	mysqlNoDefault         = 1364
	mysqlRowIsReferenced   = 1451
	mysqlNoReferencedRow   = 1452
	mysqlCheckConstraint   = 3819
	mysqlAccessDenied      = 1045
	mysqlBadDatabase       = 1049
	mysqlTooManyConnection = 1040
)

// SQLite extended result codes.
const (
	sqliteConstraintCheck      = 275
	sqliteConstraintForeignKey = 787
	sqliteConstraintNotNull    = 1299
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// Classify converts a driver error into *Error.
//
// It returns nil when err is nil or is not a database error at all.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return ConvertMySQLError(myErr)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return convertSQLiteError(liteErr)
	}

	var connErr *database.ConnectionError
	if errors.As(err, &connErr) {
		return &Error{
			Code:      ConnectionFailure,
			Driver:    connErr.Driver,
			Message:   connErr.Err.Error(),
			driverErr: err,
		}
	}

	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return &Error{Code: NotFound, Message: err.Error(), driverErr: err}
	}

	return nil
}

// ConvertMySQLError maps a server error number onto Code.
func ConvertMySQLError(src *mysql.MySQLError) *Error {
	code := Other
	switch src.Number {
	case mysqlDupEntry:
		code = UniqueViolation
	case mysqlRowIsReferenced, mysqlNoReferencedRow:
		code = ForeignKeyViolation
	case mysqlBadNull, mysqlNoDefault:
		code = NotNullViolation
	case mysqlCheckConstraint:
		code = CheckViolation
	case mysqlAccessDenied, mysqlBadDatabase, mysqlTooManyConnection:
		code = ConnectionFailure
	}

	return &Error{
		Code:           code,
		Driver:         "mysql",
		DatabaseCode:   strconv.Itoa(int(src.Number)),
		Message:        src.Message,
		ConstraintName: extractMySQLConstraint(src.Message),
		driverErr:      src,
	}
}

// ConvertPgError maps a Postgres SQLSTATE onto Code, keeping the table,
// column, and constraint metadata Postgres reports.
func ConvertPgError(src *pgconn.PgError) *Error {
	code := Other
	switch {
	case src.Code == "23505":
		code = UniqueViolation
	case src.Code == "23503":
		code = ForeignKeyViolation
	case src.Code == "23502":
		code = NotNullViolation
	case src.Code == "23514":
		code = CheckViolation
	case strings.HasPrefix(src.Code, "08"), src.Code == "28P01", src.Code == "3D000":
		code = ConnectionFailure
	}

	return &Error{
		Code:           code,
		Driver:         "postgres",
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

func convertSQLiteError(src *sqlite.Error) *Error {
	code := Other
	switch src.Code() {
	case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
		code = UniqueViolation
	case sqliteConstraintForeignKey:
		code = ForeignKeyViolation
	case sqliteConstraintNotNull:
		code = NotNullViolation
	case sqliteConstraintCheck:
		code = CheckViolation
	}

	return &Error{
		Code:         code,
		Driver:       "sqlite",
		DatabaseCode: strconv.Itoa(src.Code()),
		Message:      src.Error(),
		driverErr:    src,
	}
}

// extractMySQLConstraint pulls the constraint name out of messages like
//
//	... CONSTRAINT `frases_ibfk_1` FOREIGN KEY ...
func extractMySQLConstraint(message string) string {
	const marker = "CONSTRAINT `"
	i := strings.Index(message, marker)
	if i < 0 {
		return ""
	}
	rest := message[i+len(marker):]
	if j := strings.IndexByte(rest, '`'); j >= 0 {
		return rest[:j]
	}
	return ""
}

// ErrorCode creates a machine-friendly code of the form <DOMAIN>_<ACTION>
// for logs, e.g. frases + UniqueViolation => FRASE_ALREADY_EXISTS.
func ErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization: "FRASES" -> "FRASE".
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case NotFound:
		action = "NOT_FOUND"
	case ForeignKeyViolation:
		action = "REFERENCE_NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	case ConnectionFailure:
		action = "UNAVAILABLE"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// MarshalZerologObject lets the classified error be attached with
// zerolog's Event.Object.
func (e *Error) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("code", string(e.Code)).
		Str("error_code", ErrorCode(e.TableName, e.Code))
	if e.Driver != "" {
		ev.Str("driver", e.Driver)
	}
	if e.DatabaseCode != "" {
		ev.Str("database_code", e.DatabaseCode)
	}
	if e.TableName != "" {
		ev.Str("table", e.TableName)
	}
	if e.ColumnName != "" {
		ev.Str("column", e.ColumnName)
	}
	if e.ConstraintName != "" {
		ev.Str("constraint", e.ConstraintName)
	}
}
