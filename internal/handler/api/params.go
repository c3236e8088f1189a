package api

import (
	"strconv"

	"shareit/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parsePaging resolves the page window, falling back to configured
// defaults when the client omits a parameter. Malformed values are
// passed through as-is so the usecase rejects them uniformly.
func parsePaging(c *gin.Context, cfg config.PagingConfig) (from, size int) {
	from = cfg.DefaultFrom
	size = cfg.DefaultSize
	if raw := c.Query("from"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			from = v
		} else {
			from = -1
		}
	}
	if raw := c.Query("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			size = v
		} else {
			size = -1
		}
	}
	return from, size
}
