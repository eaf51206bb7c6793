package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes for the booking engine taxonomy.
const (
	CodeInvalidInput         = "invalidInput"
	CodeNotFound             = "notFound"
	CodeConflict             = "conflict"
	CodeTimezoneUnresolvable = "timezoneUnresolvable"
	CodeUnavailable          = "unavailable"
	CodeDependencyFailure    = "dependencyFailure"
	CodeValidationFailure    = "validationFailure"
)

// Error is the single structured error value all services return.
type Error struct {
	Code    string `json:"code"`
	Status  int    `json:"-"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func InvalidInput(msg string) *Error {
	return &Error{Code: CodeInvalidInput, Status: http.StatusBadRequest, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Status: http.StatusConflict, Message: msg}
}

// TimezoneUnresolvable covers both an unusable zone hint and a lookup timeout.
func TimezoneUnresolvable(msg string) *Error {
	return &Error{Code: CodeTimezoneUnresolvable, Status: http.StatusBadRequest, Message: msg}
}

// Unavailable is the API-surface mapping of a negative availability outcome.
// Inside the engine availability stays a plain boolean.
func Unavailable(msg string) *Error {
	return &Error{Code: CodeUnavailable, Status: http.StatusConflict, Message: msg}
}

func DependencyFailure(msg string, cause error) *Error {
	e := &Error{Code: CodeDependencyFailure, Status: http.StatusBadGateway, Message: msg, cause: cause}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// ValidationFailure reports the first failing answer path.
func ValidationFailure(path, msg string) *Error {
	return &Error{Code: CodeValidationFailure, Status: http.StatusUnprocessableEntity, Message: msg, Details: path}
}

// CodeOf extracts the taxonomy code from any error, or empty string.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, Error{
					Code:    CodeDependencyFailure,
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, err error) {
	logger := GetLogger()

	var e *Error
	if errors.As(err, &e) {
		logger.Warn(e.Message, zap.String("code", e.Code), zap.String("details", e.Details))
		c.JSON(e.Status, e)
		return
	}

	logger.Error("unclassified error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, Error{
		Code:    CodeDependencyFailure,
		Message: "Internal Server Error",
	})
}
