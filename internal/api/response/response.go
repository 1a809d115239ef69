// Package response renders the JSON envelope shared by every endpoint:
//
//	{"status": bool, "message": string, "data": ..., "error": ...}
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the canonical response body.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// Success writes a status:true envelope. A zero code means 200.
func Success(c echo.Context, code int, message string, data any) error {
	if code == 0 {
		code = http.StatusOK
	}
	return c.JSON(code, Envelope{Status: true, Message: message, Data: data})
}

// Failure writes a status:false envelope. detail is omitted when nil.
func Failure(c echo.Context, code int, message string, detail any) error {
	return c.JSON(code, Envelope{Status: false, Message: message, Error: detail})
}
