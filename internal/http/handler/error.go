package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kycintake/internal/http/middleware"
	"kycintake/internal/kyc"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.GetRequestID(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body exceeds the upload limit")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

// kycStatus maps intake error codes to HTTP statuses. Malformed input is a
// 400, a well-formed submission that breaks a rule is a 422.
var kycStatus = map[kyc.Code]int{
	kyc.CodeInvalidBusinessType:      fiber.StatusBadRequest,
	kyc.CodeInvalidOwnerMetadata:     fiber.StatusBadRequest,
	kyc.CodeOwnerCountViolation:      fiber.StatusUnprocessableEntity,
	kyc.CodeMissingBusinessDocument:  fiber.StatusUnprocessableEntity,
	kyc.CodeInvalidFreshnessDate:     fiber.StatusBadRequest,
	kyc.CodeStaleDocument:            fiber.StatusUnprocessableEntity,
	kyc.CodeMissingOwnerDocument:     fiber.StatusUnprocessableEntity,
	kyc.CodeUnrecognizedOwnerFile:    fiber.StatusBadRequest,
	kyc.CodeMissingApplicantField:    fiber.StatusBadRequest,
	kyc.CodeMissingApplicantDocument: fiber.StatusUnprocessableEntity,
	kyc.CodeStorageFailure:           fiber.StatusBadGateway,
}

// writeKYCError writes a *kyc.Error with its code and message. A storage
// failure also carries the backend's reason. Anything else becomes an opaque
// INTERNAL_ERROR.
func writeKYCError(c *fiber.Ctx, err error) error {
	var kerr *kyc.Error
	if !errors.As(err, &kerr) {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	status, ok := kycStatus[kerr.Code]
	if !ok {
		status = fiber.StatusBadRequest
	}
	msg := kerr.Message
	if kerr.Code == kyc.CodeStorageFailure && kerr.Err != nil {
		msg += ": " + kerr.Err.Error()
	}
	return writeError(c, status, string(kerr.Code), msg)
}
