package authsdk

// Envelope normalises the outcome of every backend call. Exactly one of
// Data and Err is meaningfully populated, gated by Success. Envelopes are
// constructed once per call and never mutated afterwards.
type Envelope[T any] struct {
	// Success reports whether the call succeeded.
	Success bool

	// Message is a human-readable summary, populated on success and failure.
	Message string

	// Data is the decoded payload; non-nil iff Success.
	Data *T

	// Err describes the failure; non-empty iff !Success.
	Err string
}

// Ok builds a success envelope carrying data.
func Ok[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Success: true, Message: message, Data: &data}
}

// Fail builds a failure envelope. The message doubles as the error
// description the presentation layer shows the user.
func Fail[T any](message string) Envelope[T] {
	return Envelope[T]{Success: false, Message: message, Err: message}
}
