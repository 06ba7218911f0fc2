package middleware

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	echo "github.com/labstack/echo/v4"
)

const clientIDKey = "client_id"

// ClientIDFromCtx returns the caller identity set by APIKeyMiddleware:
// a hash of the API key, or the client IP when auth is disabled.
func ClientIDFromCtx(c echo.Context) string {
	if v, ok := c.Get(clientIDKey).(string); ok && v != "" {
		return v
	}
	return "ip:" + c.RealIP()
}

// APIKeyMiddleware authenticates requests using the X-API-Key header against
// a static key list. An empty list disables authentication.
func APIKeyMiddleware(keys []string) echo.MiddlewareFunc {
	allowed := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			allowed = append(allowed, []byte(k))
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}
			key := strings.TrimSpace(c.Request().Header.Get("X-API-Key"))
			if key == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing api key"})
			}
			if !known(allowed, []byte(key)) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
			}
			c.Set(clientIDKey, "key:"+strconv.FormatUint(xxhash.Sum64String(key), 16))
			return next(c)
		}
	}
}

func known(allowed [][]byte, key []byte) bool {
	ok := 0
	for _, k := range allowed {
		ok |= subtle.ConstantTimeCompare(k, key)
	}
	return ok == 1
}
