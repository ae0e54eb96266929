package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond writes err using its kind. Store failures and foreign errors use
// fallback, which differs per route.
func Respond(c *gin.Context, err error, fallback int) {
	var e *Error
	if !errors.As(err, &e) {
		Write(c, fallback, "internal_error", "Internal server error")
		return
	}

	switch e.Kind {
	case KindAuth:
		Write(c, http.StatusUnauthorized, e.Code, e.Message)
	case KindInput:
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    e.Code,
			Message: e.Message,
			Field:   e.Field,
		})
	case KindNotFound:
		Write(c, http.StatusNotFound, e.Code, e.Message)
	default:
		msg := e.Message
		if msg == "" {
			msg = "Internal server error"
		}
		Write(c, fallback, e.Code, msg)
	}
}
