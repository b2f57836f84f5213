package backend

import "fmt"

// StatusError carries a non-2xx HTTP status from the analysis API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("backend returned status %d", e.Code)
}

// IsClientError reports whether the status is in [400,500). Client errors are
// surfaced to the caller instead of being papered over with fixture data.
func (e *StatusError) IsClientError() bool {
	return e.Code >= 400 && e.Code < 500
}
