package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"webhook-receiver/pkg/response"
)

const rawBodyKey = "raw_body"

// RawBody reads the request body once, up to the configured limit, and
// keeps the exact bytes on the context. Oversized bodies get 413 and the
// handler never runs.
func (mw Middleware) RawBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reader := c.Request.Body
		if mw.maxBodySize > 0 {
			reader = http.MaxBytesReader(c.Writer, c.Request.Body, mw.maxBodySize)
		}

		body, err := io.ReadAll(reader)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				mw.l.Warnf(ctx, "middleware.RawBody: body exceeds %d bytes", tooLarge.Limit)
				response.PayloadTooLarge(c)
				return
			}
			mw.l.Warnf(ctx, "middleware.RawBody: read body: %v", err)
			response.BadRequest(c, "Unable to read request body")
			return
		}

		c.Set(rawBodyKey, body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

// GetRawBody returns the bytes captured by RawBody.
func GetRawBody(c *gin.Context) ([]byte, bool) {
	v, ok := c.Get(rawBodyKey)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}
