package kyc

import (
	"errors"
	"fmt"
)

// Code identifies the single rule a submission violated.
type Code string

const (
	CodeInvalidBusinessType      Code = "INVALID_BUSINESS_TYPE"
	CodeInvalidOwnerMetadata     Code = "INVALID_OWNER_METADATA"
	CodeOwnerCountViolation      Code = "OWNER_COUNT_VIOLATION"
	CodeMissingBusinessDocument  Code = "MISSING_BUSINESS_DOCUMENT"
	CodeInvalidFreshnessDate     Code = "INVALID_FRESHNESS_DATE"
	CodeStaleDocument            Code = "STALE_DOCUMENT"
	CodeMissingOwnerDocument     Code = "MISSING_OWNER_DOCUMENT"
	CodeUnrecognizedOwnerFile    Code = "UNRECOGNIZED_OWNER_FILE"
	CodeMissingApplicantField    Code = "MISSING_APPLICANT_FIELD"
	CodeMissingApplicantDocument Code = "MISSING_APPLICANT_DOCUMENT"
	CodeStorageFailure           Code = "STORAGE_FAILURE"
)

// Error is returned by validation and assembly. Message is safe to show to
// the submitter; Err carries the underlying cause when there is one.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the Code carried by err, or "" if err is not a *Error.
func CodeOf(err error) Code {
	var kerr *Error
	if errors.As(err, &kerr) {
		return kerr.Code
	}
	return ""
}

// IsValidation reports whether err is a rejection the caller can fix by
// correcting the submission, as opposed to a storage failure.
func IsValidation(err error) bool {
	code := CodeOf(err)
	return code != "" && code != CodeStorageFailure
}
