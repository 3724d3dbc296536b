package errors

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Envelope is the shape of every API response
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

var exposeInternal atomic.Bool

// SetExposeInternal controls whether the text of unexpected errors is
// included in 500 responses. Only enable outside production.
func SetExposeInternal(v bool) {
	exposeInternal.Store(v)
}

// RespondSuccess writes a success envelope
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithError writes a failure envelope
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
		Code:    errorCode,
	})
}

// RespondWithValidationError lists every failed rule in errors[]
func RespondWithValidationError(c *gin.Context, messages []string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Code:    ValidationInvalidInput,
		Errors:  messages,
	})
}

// Respond maps err onto the taxonomy and writes the failure envelope
func Respond(c *gin.Context, err error) {
	appErr, ok := As(err)
	if !ok {
		appErr = ParseError(err, "")
	}
	if appErr.Kind == KindInternal || appErr.Kind == KindUnavailable {
		_ = c.Error(err)
	}

	env := Envelope{
		Success: false,
		Message: appErr.Message,
		Code:    appErr.Code,
		Errors:  appErr.Details,
	}
	if appErr.Kind == KindInternal && exposeInternal.Load() && err != nil {
		env.Errors = append(env.Errors, err.Error())
	}
	c.JSON(appErr.Kind.Status(), env)
}

// Shortcuts for responses produced outside the service layer

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required."
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access forbidden. Insufficient permissions."
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFoundResponse(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
