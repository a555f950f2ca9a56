// Package response writes error bodies for gin handlers.
package response

import (
	"log"
	"net/http"

	"cryptnote-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Error writes err as {success:false, error} or, for validation failures,
// {success:false, errors:[...]}. Internal errors are logged with detail and
// answered with a generic message.
func Error(c *gin.Context, component string, err error) {
	ErrorWithStatus(c, component, err, apperror.Status(err))
}

// ErrorWithStatus is Error with an explicit status code.
func ErrorWithStatus(c *gin.Context, component string, err error, status int) {
	if fields := apperror.FieldsOf(err); len(fields) > 0 {
		c.JSON(status, gin.H{"success": false, "errors": fields})
		return
	}
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s failed: %v", component, c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"success": false, "error": apperror.PublicMessage(err)})
}

// BadRequest answers a body that could not be decoded.
func BadRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
}
