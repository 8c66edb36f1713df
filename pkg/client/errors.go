package client

import "fmt"

// NetworkError wraps a transport-level failure: the request never produced an
// HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response. Message carries the server's structured
// {error} field verbatim when present, a generic status line otherwise.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MalformedResponseError is a 2xx response whose body does not match the
// contract shape.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// UserMessage extracts the text the view should show for any failure coming
// out of the client, falling back to a generic line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	if httpErr, ok := err.(*HTTPError); ok && httpErr.Message != "" {
		return httpErr.Message
	}

	if _, ok := err.(*NetworkError); ok {
		return "network failure, try again"
	}

	return "request failed"
}
