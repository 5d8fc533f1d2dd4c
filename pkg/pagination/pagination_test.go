package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidate_ClampsParams verifies out-of-range page and per-page values
// are corrected to sane defaults.
func TestValidate_ClampsParams(t *testing.T) {
	t.Parallel()

	p := &PaginationParams{Page: 0, PerPage: -1}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 500}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PerPage)
}

// TestOffset verifies the SQL offset calculation.
func TestOffset(t *testing.T) {
	t.Parallel()

	p := &PaginationParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
}

// TestNewPagination verifies the derived page metadata.
func TestNewPagination(t *testing.T) {
	t.Parallel()

	pg := NewPagination(2, 10, 35)
	assert.Equal(t, 4, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	last := NewPagination(4, 10, 35)
	assert.False(t, last.HasNext)
}
