package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	p := Pagination{}.Normalize(20, 50)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = Pagination{Page: 3, Limit: 500}.Normalize(20, 50)
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 100, p.Offset())
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(Pagination{Page: 2, Limit: 20}, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(41), meta.TotalItems)
	assert.Equal(t, 2, meta.CurrentPage)
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, SplitCSV(" Go, SQL ,,Docker, "))
	assert.Equal(t, []string{}, SplitCSV(""))
}
