package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sirosfoundation/go-hello-server/pkg/config"
)

// CORS builds the CORS middleware from configuration.
//
// Requests from origins that are not allowed pass through untouched and get no
// CORS headers, so the browser enforces the policy instead of the server
// rejecting the request.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  cfg.AllowedMethods,
		AllowHeaders:  cfg.AllowedHeaders,
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        cfg.MaxAge,
	}

	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			break
		}
		allowed[origin] = true
	}
	if !corsCfg.AllowAllOrigins {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	handler := cors.New(corsCfg)
	if corsCfg.AllowAllOrigins {
		return handler
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && !allowed[origin] {
			c.Next()
			return
		}
		handler(c)
	}
}
