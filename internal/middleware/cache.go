package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "fmt"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/sm227/TravelLight-sub000/internal/config"
)

// bodyCapture tees the response body so a successful JSON response can be
// stored after it has been sent to the client.
type bodyCapture struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (w *bodyCapture) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
    w.buf.Write(b)
    return w.ResponseWriter.Write(b)
}

// NewResponseCache caches successful GET responses in Redis for cfg.TTL.
// Entries are stored as "<status>|<json body>" under a key derived from the
// route and query string.  Only apply this to read-only endpoints whose
// payload may lag the database by at most one TTL; the dashboard endpoints
// are sized for that with a TTL no longer than the refresh interval.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            key := cacheKey(cfg.Prefix, c)
            ctx := c.Request().Context()

            if raw, err := rdb.Get(ctx, key).Result(); err == nil {
                if status, body, ok := splitEntry(raw); ok {
                    c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
                    c.Response().Header().Set("X-Cache", "HIT")
                    return c.String(status, body)
                }
            }

            cw := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if cw.status == http.StatusOK {
                entry := strconv.Itoa(cw.status) + "|" + cw.buf.String()
                _ = rdb.SetEx(context.Background(), key, entry, cfg.TTL).Err()
            }
            return nil
        }
    }
}

func cacheKey(prefix string, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Request().URL.Path + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", prefix, sum)
}

func splitEntry(raw string) (int, string, bool) {
    i := strings.IndexByte(raw, '|')
    if i <= 0 {
        return 0, "", false
    }
    status, err := strconv.Atoi(raw[:i])
    if err != nil {
        return 0, "", false
    }
    return status, raw[i+1:], true
}
