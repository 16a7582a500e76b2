package toniecloud

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotAuthenticated is returned when an operation needs a bearer token
	// and no login has succeeded yet.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrChapterNotFound is returned when a removal target is absent from the
	// figurine's current chapter list.
	ErrChapterNotFound = errors.New("chapter not found")
	// ErrFileNotFound is returned when the local file for an upload is missing.
	ErrFileNotFound = errors.New("file not found")
	// ErrUploadFailed marks blob-store transport failures during step two of
	// the upload workflow.
	ErrUploadFailed = errors.New("upload failed")
	// ErrDecode marks response bodies that do not match the expected shape.
	ErrDecode = errors.New("decode response")
	// ErrNoPrompter is returned by interactive entry points when no prompt
	// provider has been configured.
	ErrNoPrompter = errors.New("no prompter configured")
)

// ServiceError reports a non-2xx response from the application API.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("service returned %d", e.Status)
	}
	return fmt.Sprintf("service returned %d: %s", e.Status, body)
}

// AuthError reports a failed credential exchange. Status and Body carry the
// identity provider response when one was received; Err carries transport or
// decode failures.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("authentication failed: token endpoint returned %d", e.Status)
	}
	return fmt.Sprintf("authentication failed: token endpoint returned %d: %s", e.Status, body)
}

func (e *AuthError) Unwrap() error { return e.Err }

// AmbiguousHouseholdError is returned when no household has been selected and
// the account does not hold exactly one, so automatic selection is unsafe.
type AmbiguousHouseholdError struct {
	Count int
}

func (e *AmbiguousHouseholdError) Error() string {
	return fmt.Sprintf("cannot select household automatically: account has %d households", e.Count)
}
