// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes from pgx's *pgconn.PgError, classifies them
// and converts them into the errs taxonomy with readable messages
// (e.g. a "23505 unique_violation" on users_email_key becomes a
// KindConstraintViolation error saying "A User with this Email already exists").
package sqlerr

import "fmt"

// Code is a normalized category for a SQLSTATE.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	IntegrityViolation  Code = "integrity_violation"
	RestrictViolation   Code = "restrict_violation"
	UndefinedTable      Code = "undefined_table"
	UndefinedColumn     Code = "undefined_column"
	SyntaxError         Code = "syntax_error"
	InvalidText         Code = "invalid_text_representation"
	QueryCanceled       Code = "query_canceled"
	TooManyConnections  Code = "too_many_connections"
	AdminShutdown       Code = "admin_shutdown"
)

// MapCode maps a raw SQLSTATE to a Code.
//
// Codes of class 23 that are not listed explicitly still map to
// IntegrityViolation, so IsConstraintViolation stays accurate for them.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "23001":
		return RestrictViolation
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "42601":
		return SyntaxError
	case "22P02":
		return InvalidText
	case "57014":
		return QueryCanceled
	case "53300":
		return TooManyConnections
	case "57P01":
		return AdminShutdown
	}

	if len(sqlstate) == 5 && sqlstate[:2] == "23" {
		return IntegrityViolation
	}

	return Other
}

// IsConstraintViolation reports whether c belongs to SQLSTATE class 23.
func (c Code) IsConstraintViolation() bool {
	switch c {
	case NotNullViolation, ForeignKeyViolation, UniqueViolation,
		CheckViolation, ExclusionViolation, IntegrityViolation, RestrictViolation:
		return true
	}

	return false
}

// Severity is the PostgreSQL message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the severity string reported by the server.
// Unknown values are treated as SeverityError.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	}

	return SeverityError
}

// Error is a driver-independent view of a PostgreSQL error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (pe *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", pe.Severity, pe.Message, pe.DatabaseCode)
}

// Unwrap returns the original driver error.
func (pe *Error) Unwrap() error {
	return pe.driverErr
}
