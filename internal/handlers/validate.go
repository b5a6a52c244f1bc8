package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"quillpress/internal/models"
	"quillpress/internal/slug"
)

// Validation limits for post and category fields. Upper bounds follow the
// column widths in the schema.
const (
	minCategoryNameLen = 2
	maxCategoryNameLen = 100
	maxDescriptionLen  = 1_000
	minTitleLen        = 3
	maxTitleLen        = 255
	minContentLen      = 10
	maxContentLen      = 100_000
)

// validatePost checks post inputs and returns the first error found.
func validatePost(title, content string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < minTitleLen {
		return "Title must be at least 3 characters."
	}
	if n > maxTitleLen {
		return "Title is too long (max 255 characters)."
	}
	if slug.Generate(title) == "" {
		return "Title must contain at least one letter or digit."
	}
	n = utf8.RuneCountInString(strings.TrimSpace(content))
	if n < minContentLen {
		return "Content must be at least 10 characters."
	}
	if n > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateCategoryName checks a category name and returns the first error found.
func validateCategoryName(name string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < minCategoryNameLen {
		return "Name must be at least 2 characters."
	}
	if n > maxCategoryNameLen {
		return "Name is too long (max 100 characters)."
	}
	if slug.Generate(name) == "" {
		return "Name must contain at least one letter or digit."
	}
	return ""
}

// validateDescription checks an optional category description.
func validateDescription(desc *string) string {
	if desc != nil && utf8.RuneCountInString(*desc) > maxDescriptionLen {
		return "Description is too long (max 1,000 characters)."
	}
	return ""
}

// parseID parses a positive integer identifier from a path segment.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// pageQuery holds the parsed query of the paginated listing.
type pageQuery struct {
	Page       int
	Limit      int
	CategoryID *int64
}

// parsePageQuery reads page, limit and categoryId, applying the defaults
// for absent values and rejecting malformed or out-of-range ones.
func parsePageQuery(q url.Values) (pageQuery, error) {
	pq := pageQuery{Page: models.DefaultPage, Limit: models.DefaultLimit}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return pq, fmt.Errorf("page must be a positive integer")
		}
		pq.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > models.MaxLimit {
			return pq, fmt.Errorf("limit must be between 1 and %d", models.MaxLimit)
		}
		pq.Limit = n
	}
	if v := q.Get("categoryId"); v != "" {
		id, ok := parseID(v)
		if !ok {
			return pq, fmt.Errorf("categoryId must be a positive integer")
		}
		pq.CategoryID = &id
	}
	return pq, nil
}
