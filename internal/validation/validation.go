// Package validation contains the logic for validating
// create payloads before they reach the database.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and converts validation errors into errs.KindInvalidInput errors
// with one entry per offending field.
package validation
