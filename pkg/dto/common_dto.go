package dto

import (
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
)

// FileUpload is an uploaded multipart file handed to a service.
type FileUpload struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

type Pagination struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// Normalize clamps page to >= 1 and limit to [1, max], using def when unset.
func (p Pagination) Normalize(def, max int) Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	Limit       int   `json:"limit"`
}

func NewPaginationMeta(p Pagination, total int64) PaginationMeta {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return PaginationMeta{
		CurrentPage: p.Page,
		TotalPages:  pages,
		TotalItems:  total,
		Limit:       p.Limit,
	}
}

// OpenFormFile returns the named multipart file, or nil when the request has
// none. The caller must close the returned file.
func OpenFormFile(c *gin.Context, field string) (*FileUpload, multipart.File, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil {
		return nil, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &FileUpload{
		Reader:   file,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
	}, file, nil
}

// SplitCSV splits a comma separated form value, trimming entries and dropping
// empty ones.
func SplitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
