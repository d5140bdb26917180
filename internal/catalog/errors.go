package catalog

import (
	"errors"
	"fmt"
)

// statusError signals a non-2xx response from the catalog endpoint.
type statusError struct {
	code   int
	status string
}

func (e statusError) Error() string { return "catalog returned " + e.status }

// StatusCode exposes the HTTP status that caused the failure.
func (e statusError) StatusCode() int { return e.code }

// IsStatus reports whether err is a non-2xx catalog response.
func IsStatus(err error) bool {
	var se statusError
	return errors.As(err, &se)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not a status error.
func StatusCode(err error) int {
	var se statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}

// decodeError signals a body that is not valid JSON or has fields of the wrong type.
type decodeError struct{ err error }

func (e decodeError) Error() string { return "decode catalog: " + e.err.Error() }
func (e decodeError) Unwrap() error { return e.err }

// IsDecode reports whether err indicates a malformed catalog body.
func IsDecode(err error) bool {
	var de decodeError
	return errors.As(err, &de)
}

// shapeError signals a body without a "data" array.
type shapeError struct{ msg string }

func (e shapeError) Error() string { return "catalog shape: " + e.msg }

// IsShape reports whether err indicates a missing or non-array "data" key.
func IsShape(err error) bool {
	var se shapeError
	return errors.As(err, &se)
}

func errShape(format string, a ...any) error { return shapeError{msg: fmt.Sprintf(format, a...)} }
