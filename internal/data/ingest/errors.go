package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/penwyp/go-dive-monitor/internal/data/sheet"
)

// FailureKind classifies an ingestion failure
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNetwork
	FailureHTTP
	FailureNotFound
	FailureAccessDenied
	FailureEmptyDataset
	FailureUnknown
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureNetwork:
		return "network"
	case FailureHTTP:
		return "http"
	case FailureNotFound:
		return "not_found"
	case FailureAccessDenied:
		return "access_denied"
	case FailureEmptyDataset:
		return "empty_dataset"
	default:
		return "unknown"
	}
}

// MarshalText lets the kind appear by name in JSON payloads
func (k FailureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Classify maps err onto the failure taxonomy
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}

	var (
		notFound *sheet.NotFoundError
		denied   *sheet.AccessDeniedError
		httpErr  *sheet.HTTPError
		netErr   *sheet.NetworkError
	)

	switch {
	case errors.Is(err, ErrEmptyDataset):
		return FailureEmptyDataset
	case errors.As(err, &notFound):
		return FailureNotFound
	case errors.As(err, &denied):
		return FailureAccessDenied
	case errors.As(err, &httpErr):
		return FailureHTTP
	case errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return FailureNetwork
	default:
		return FailureUnknown
	}
}

const genericFailureMessage = "Failed to connect to the Google Sheet."

// UserMessage returns the text shown to the user for err
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch Classify(err) {
	case FailureEmptyDataset:
		return "No dive logs found in the sheet."
	case FailureNotFound:
		return "Sheet not found."
	case FailureAccessDenied:
		var denied *sheet.AccessDeniedError
		if errors.As(err, &denied) && denied.HTMLPayload {
			return "Access Denied: The spreadsheet is not public."
		}
		return "Access Denied. Ensure the Sheet is shared."
	case FailureHTTP:
		var httpErr *sheet.HTTPError
		errors.As(err, &httpErr)
		return fmt.Sprintf("Google Sheets error: %d", httpErr.Status)
	default:
		return genericFailureMessage
	}
}
