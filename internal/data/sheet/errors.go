package sheet

import "fmt"

// NetworkError is a transport failure: no response was received
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-success status other than 401, 403 and 404
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Status)
}

// NotFoundError means the sheet (or local export file) does not exist
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sheet not found: %s", e.Resource)
}

// AccessDeniedError is returned for 401/403 responses and for HTML bodies
// served in place of the CSV export
type AccessDeniedError struct {
	Status      int
	HTMLPayload bool
}

func (e *AccessDeniedError) Error() string {
	if e.HTMLPayload {
		return "access denied: received an HTML page instead of CSV"
	}
	return fmt.Sprintf("access denied: status %d", e.Status)
}
