// Package router wires the HTTP surface named in §6 onto gin, with
// request-id, structured logging, tracing, and panic-recovery middleware
// applied to every route.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/coinform/credserve/consts"
	"github.com/coinform/credserve/internal/api/handler"
	"github.com/coinform/credserve/pkg/idgen"
	"github.com/coinform/credserve/pkg/logger"
)

// Setup registers every route §6 names onto r, wrapped with the shared
// middleware stack.
func Setup(r *gin.Engine, h *handler.Handler, corsOrigins []string) {
	r.Use(requestID(), otelgin.Middleware("credserve"), accessLog(), gin.Recovery())
	if len(corsOrigins) > 0 {
		r.Use(cors(corsOrigins))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "uptime": consts.GetUptime().String()})
	})

	r.GET("/claim/search", h.ClaimSearch)
	r.POST("/claim/internal-search", h.ClaimInternalSearch)

	cred := r.Group("/acred/reviewer/credibility")
	cred.GET("/claim", h.ReviewClaim)
	cred.GET("/website", h.ReviewWebsite)
	cred.GET("/webpage", h.ReviewWebpage)
	cred.POST("/webpage", h.ReviewWebpage)
	cred.POST("/tweet", h.ReviewTweet)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "not found", "status_code": http.StatusNotFound})
	})
}

// requestID assigns a short unique id to every request, echoed back in the
// response header and carried into the access log.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := idgen.NewRequestID()
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// cors allows only the configured origins, echoing the request's Origin
// back rather than a wildcard so credentialed requests stay valid.
func cors(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = true
	}
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && originSet[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Request-Id")
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Max-Age", "86400")
		}
		if c.Request.Method == http.MethodOptions {
			if origin != "" && originSet[origin] {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
