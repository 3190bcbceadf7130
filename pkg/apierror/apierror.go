// Package apierror defines the JSON error envelope shared by every endpoint:
//
//	{"error": {"code": "...", "message": "...", "fields": [...]}}
package apierror

import (
	"github.com/gin-gonic/gin"
)

// Field describes one invalid input field.
type Field struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Body is the content of the "error" key.
type Body struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Fields  []Field `json:"fields,omitempty"`
}

// Response is the error envelope.
type Response struct {
	Error Body `json:"error"`
}

// New builds an envelope. Fields are optional.
func New(code, message string, fields ...Field) Response {
	return Response{Error: Body{Code: code, Message: message, Fields: fields}}
}

// Write sends the envelope with the given status.
func Write(c *gin.Context, status int, code, message string, fields ...Field) {
	c.JSON(status, New(code, message, fields...))
}

// Abort sends the envelope and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, New(code, message))
}
