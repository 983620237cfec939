package judge

import "fmt"

// ErrNotConfigured indicates no Judge0 API key is set.
type ErrNotConfigured struct{}

func (e *ErrNotConfigured) Error() string {
	return "Judge0 API key not found on the server."
}

// UpstreamError is a transport failure or non-success response from Judge0.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("judge0: http %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("judge0: http %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("judge0: %v", e.Err)
	}
	return "judge0: request failed"
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the Judge0 body could not be decoded.
type MalformedResponseError struct {
	Body []byte
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("judge0: malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
