package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

// Metrics records request counts and latency labelled by the matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.RequestStarted()
		c.Next()
		done(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()))
	}
}
