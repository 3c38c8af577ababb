// Package apperrors provides the error type used across the relay service.
// Errors carry an HTTP status code and may wrap other errors, so handlers can
// derive per-condition sentinels from a package base error and map them to
// responses without switching on error strings.
package apperrors

// Error is the application error interface. It extends the standard error
// interface with status code management and error chaining. Methods returning
// Error never mutate the receiver; they return derived errors.
type Error interface {
	error
	Unwrap() error // supports errors.Is / errors.As

	New(msg string) Error                  // derives a sentinel using the current error as template
	Msg(msg string) Error                  // derives an error with a new message, wrapping the original
	MsgErr(msg string, err ...error) Error // like Msg, additionally wrapping the given errors
	Err(err ...error) Error                // attaches errors, keeping the current message
	SetStatusCode(int) Error               // sets the HTTP status code on a derived error
	StatusCode() int                       // returns the HTTP status code
	ErrorAll() string                      // message followed by wrapped error messages
	UnwrapAll() []error                    // all wrapped errors in attachment order
}
