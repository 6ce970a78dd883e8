package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Observer receives request measurements
type Observer interface {
	Begin()
	Observe(method, route string, status int, elapsed time.Duration)
}

// Metrics reports each request to obs, labelled with the matched route pattern
func Metrics(obs Observer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		obs.Begin()

		c.Next()

		obs.Observe(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
