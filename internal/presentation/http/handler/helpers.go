package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/response"
	"github.com/marketpos/marketpos-api/pkg/pagination"
)

// getUserID extracts the authenticated user's ID from the gin context.
// Returns false and writes a 401 when the context carries no valid ID.
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		response.Unauthorized(c, "Invalid user identity")
		return uuid.Nil, false
	}
	return id, true
}

// parseIDParam parses a uuid path parameter. Returns false and writes a
// 400 when the value is not a valid uuid.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// bindPagination reads page/per_page from the query string, falling back to
// defaults when absent or invalid.
func bindPagination(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		return pagination.DefaultPagination()
	}
	params.Validate()
	return params
}
