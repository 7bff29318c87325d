package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Success writes a success envelope
func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, StatusSuccess, code, message, data, nil)
}

// Error writes an error envelope and aborts the handler chain. Server errors
// are also recorded on the context for the request logger.
func Error(c *gin.Context, code int, message string, details interface{}) {
	if code >= http.StatusInternalServerError {
		err := errors.New(message)
		if details != nil {
			err = fmt.Errorf("%s: %v", message, details)
		}
		_ = c.Error(err)
	}
	RespondJSON(c, StatusError, code, message, nil, details)
	c.Abort()
}
