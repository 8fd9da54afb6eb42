package http

import (
	"html/template"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const isoDateLayout = "2006-01-02"

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(400, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalDate parses an ISO calendar date (YYYY-MM-DD). An empty value
// is not an error; it simply means the date was not supplied.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(isoDateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// csrfField returns the hidden CSRF input for form templates. Empty when the
// CSRF middleware is not active (e.g. in controller tests).
func csrfField(c *gin.Context) template.HTML {
	if v, exists := c.Get(csrfFieldContextKey); exists {
		if field, ok := v.(template.HTML); ok {
			return field
		}
	}
	return ""
}
