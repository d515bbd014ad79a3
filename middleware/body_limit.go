package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONBodyLimit caps the size of JSON request bodies. Multipart uploads are
// bounded by the router's MaxMultipartMemory and the upload count instead.
func JSONBodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && c.ContentType() == gin.MIMEJSON {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
