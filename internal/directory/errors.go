package directory

import "fmt"

// FetchError is a transport failure or non-2xx response from the users endpoint.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
