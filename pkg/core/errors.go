package core

import "fmt"

// ConnectionError is returned when a session cannot be established.
// Msg carries the driver message verbatim.
type ConnectionError struct {
	Msg string
	Err error
}

func (e *ConnectionError) Error() string {
	return "cannot connect to database: " + e.Msg
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NewConnectionError wraps a driver error.
func NewConnectionError(err error) *ConnectionError {
	return &ConnectionError{Msg: err.Error(), Err: err}
}

// ValidationError is returned when a table is not in the catalog, or a
// request is malformed before any SQL is issued.
type ValidationError struct {
	Table  TableRef
	Delete bool
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Delete {
		return fmt.Sprintf("Table %s not found or not allowed for delete", e.Table)
	}
	return fmt.Sprintf("Table %s not found or not allowed", e.Table)
}

// EngineError carries an error raised by the database engine.
type EngineError struct {
	Msg string
	Err error
}

func (e *EngineError) Error() string { return e.Msg }

func (e *EngineError) Unwrap() error { return e.Err }

// NewEngineError wraps an engine error, keeping its message verbatim.
func NewEngineError(err error) *EngineError {
	return &EngineError{Msg: err.Error(), Err: err}
}

// DecodeError is returned for a malformed row snapshot payload.
type DecodeError struct {
	Msg string
}

func (e *DecodeError) Error() string {
	return "invalid row data: " + e.Msg
}
