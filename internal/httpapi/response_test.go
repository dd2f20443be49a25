package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermowatch/go-thermal-backend/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRenderErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "not found",
			err:     domain.NewNotFound("Transformer", "id", "42"),
			status:  http.StatusNotFound,
			message: "Transformer not found with id: 42",
		},
		{
			name:    "conflict",
			err:     domain.NewConflict("Transformer", "number", "AZ-1101"),
			status:  http.StatusConflict,
			message: "Transformer already exists with number: AZ-1101",
		},
		{
			name:    "validation",
			err:     domain.NewValidation("Baseline image is required"),
			status:  http.StatusBadRequest,
			message: "Baseline image is required",
		},
		{
			name:    "unavailable",
			err:     domain.NewUnavailable("anomaly detection service", errors.New("connection refused")),
			status:  http.StatusServiceUnavailable,
			message: "External service is unavailable. Please try again later.",
		},
		{
			name:    "unclassified",
			err:     errors.New("driver: bad connection"),
			status:  http.StatusInternalServerError,
			message: "An unexpected error occurred. Please try again later.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			RenderError(c, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tc.message, env.Message)
		})
	}
}

func TestRenderErrorNeverLeaksInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RenderError(c, errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password")
}

func TestBindJSONValidationFieldMap(t *testing.T) {
	type payload struct {
		Number string `json:"number" binding:"required"`
		Source string `json:"source" binding:"required,oneof=ai user"`
	}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"source":"robot"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var p payload
	ok := BindJSON(c, &p)

	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Validation failed", env.Message)

	fields, isMap := env.Data.(map[string]any)
	require.True(t, isMap)
	assert.Equal(t, "Number is required", fields["number"])
	assert.Equal(t, "Source must be one of: ai user", fields["source"])
}

func TestBindJSONMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"number": `))
	c.Request.Header.Set("Content-Type", "application/json")

	var p struct {
		Number string `json:"number" binding:"required"`
	}
	ok := BindJSON(c, &p)

	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body format", decodeEnvelope(t, rec).Message)
}

func TestUintParam(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	v, ok := UintParam(c, "id")
	require.True(t, ok)
	assert.Equal(t, uint(42), v)
}

func TestUintParamRejectsNonNumeric(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, ok := UintParam(c, "id")
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid value 'abc' for parameter 'id'", decodeEnvelope(t, rec).Message)
}
