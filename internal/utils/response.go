package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/nftune-store/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, string(types.KindNotFound))
}

// StatusForKind maps a domain error kind onto an HTTP status.
func StatusForKind(kind types.ErrorKind) int {
	switch kind {
	case types.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case types.KindNotRegistered, types.KindForbidden:
		return fiber.StatusForbidden
	case types.KindNotFound:
		return fiber.StatusNotFound
	case types.KindInvalidArgument:
		return fiber.StatusBadRequest
	case types.KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// DomainErrorResponse sends err with the status of its kind. Errors that
// are not domain errors are reported as 500 with the given type.
func DomainErrorResponse(c *fiber.Ctx, err error, fallbackType string) error {
	var de *types.DomainError
	if errors.As(err, &de) {
		return ErrorResponse(c, de.Message, StatusForKind(de.Kind), string(de.Kind))
	}
	return ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, fallbackType)
}

// MutationSuccessResponse sends a success response for mutations that
// return no entity
func MutationSuccessResponse(c *fiber.Ctx, affectedRows int64) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponseStruct{
		Message:      "Success",
		Ok:           true,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		AffectedRows: affectedRows,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	AffectedRows int64  `json:"affectedRows"`
}
