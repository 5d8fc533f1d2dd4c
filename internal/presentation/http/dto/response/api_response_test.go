package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpos/marketpos-api/pkg/pagination"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

// TestMetaRequestIDFromContext verifies the envelope reuses the request ID
// the logging middleware assigned, so responses and log lines correlate.
func TestMetaRequestIDFromContext(t *testing.T) {
	c, rec := newTestContext(t)
	c.Set("request_id", "req-from-middleware")
	c.Request.Header.Set("X-Request-ID", "req-from-header")

	OK(c, "done", nil)

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Meta)
	assert.Equal(t, "req-from-middleware", body.Meta.RequestID)
}

// TestMetaRequestIDFallsBackToHeader verifies routes outside the middleware
// chain still echo the client's request ID.
func TestMetaRequestIDFallsBackToHeader(t *testing.T) {
	c, rec := newTestContext(t)
	c.Request.Header.Set("X-Request-ID", "req-from-header")

	OK(c, "done", nil)

	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Meta)
	assert.Equal(t, "req-from-header", body.Meta.RequestID)
}

// TestSuccessWithPagination verifies list responses carry the items as the
// data payload and the page bookkeeping under meta.
func TestSuccessWithPagination(t *testing.T) {
	c, rec := newTestContext(t)

	result := pagination.NewPaginatedResult(
		[]string{"a", "b"},
		pagination.NewPagination(1, 15, 2),
	)
	SuccessWithPagination(c, http.StatusOK, "listed", result)

	var body struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
		Meta    struct {
			Pagination *pagination.Pagination `json:"pagination"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, []string{"a", "b"}, body.Data)
	require.NotNil(t, body.Meta.Pagination)
	assert.Equal(t, int64(2), body.Meta.Pagination.Total)
	assert.Equal(t, 1, body.Meta.Pagination.TotalPages)
}
