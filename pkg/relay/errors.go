package relay

// Error signals a failed relay call: network failure, non-2xx status or a
// malformed response body. StatusCode is zero when no HTTP response arrived.
type Error struct {
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
