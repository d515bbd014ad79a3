package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/opsvix-api/dto"
)

// Recovery turns panics into the standard error envelope. The panic value
// is only echoed to the client when exposeErrors is set.
func Recovery(logger hclog.Logger, exposeErrors bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", "method", c.Request.Method, "path", c.Request.URL.Path, "panic", recovered)

		msg := "Server error"
		if exposeErrors {
			msg = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail(msg))
	})
}
