package middleware

import (
	"net/http"
	"strconv"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// SharerHeader carries the id of the user performing the request. There
// is no authentication layer; the gateway in front of the service is
// trusted to have validated the caller.
const SharerHeader = "X-Sharer-User-Id"

const ctxSharerIDKey = "sharer_id"

func RequireSharerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusBadRequest,
				errs.New("missing sharer header"), "X-Sharer-User-Id header required", nil)
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && id <= 0 {
			err = errs.New("non-positive sharer id")
		}
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest,
				err, "Invalid X-Sharer-User-Id header", nil)
			return
		}

		c.Set(ctxSharerIDKey, id)
		c.Next()
	}
}

func GetSharerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxSharerIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
