// Package httpapi carries the response envelope, error rendering and
// request plumbing shared by every handler.
package httpapi

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

// Envelope is the uniform response body for every endpoint, success or
// failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: false, Message: message, Data: data})
}

// RenderError maps a domain error to its HTTP status and writes the
// error envelope. Unclassified errors become 500 with a generic message;
// the underlying error is logged, never exposed.
func RenderError(c *gin.Context, err error) {
	var (
		notFound    *domain.NotFoundError
		conflict    *domain.ConflictError
		validation  *domain.ValidationError
		unavailable *domain.UnavailableError
	)

	switch {
	case errors.As(err, &notFound):
		Fail(c, http.StatusNotFound, notFound.Error(), nil)
	case errors.As(err, &conflict):
		Fail(c, http.StatusConflict, conflict.Error(), nil)
	case errors.As(err, &validation):
		var data any
		if len(validation.Fields) > 0 {
			data = validation.Fields
		}
		Fail(c, http.StatusBadRequest, validation.Message, data)
	case errors.As(err, &unavailable):
		Fail(c, http.StatusServiceUnavailable, "External service is unavailable. Please try again later.", nil)
	default:
		log.Printf("[error] unexpected: %v", err)
		Fail(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

// BindJSON decodes and validates the request body. On failure it writes
// the 400 envelope (with a field error map for validation failures) and
// returns false.
func BindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldName(fe)] = fieldMessage(fe)
		}
		Fail(c, http.StatusBadRequest, "Validation failed", fields)
		return false
	}

	Fail(c, http.StatusBadRequest, "Invalid request body format", nil)
	return false
}

// UintParam parses a numeric path parameter, writing the 400 envelope on
// mismatch.
func UintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		Fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid value '%s' for parameter '%s'", raw, name), nil)
		return 0, false
	}
	return uint(v), true
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
