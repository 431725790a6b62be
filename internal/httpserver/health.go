package httpserver

import (
	"net/http"

	"broadcast-srv/pkg/errors"
	"broadcast-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// healthCheck verifies every downstream dependency.
// @Summary Health Check
// @Description Check if the broadcast service and its dependencies are healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Failure 503 {object} response.Resp "A dependency is down"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.db.PingContext(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable,
			"Postgres connection failed", http.StatusServiceUnavailable))
		return
	}
	if err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable,
			"Redis connection failed", http.StatusServiceUnavailable))
		return
	}

	response.OK(c, gin.H{
		"status":   "healthy",
		"service":  "broadcast-srv",
		"postgres": "connected",
		"redis":    "connected",
	})
}

// readyCheck reports whether the service can accept traffic.
// @Summary Readiness Check
// @Description Check if the broadcast service is ready to serve traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} response.Resp "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable,
			"Redis connection not available", http.StatusServiceUnavailable))
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "broadcast-srv",
	})
}

// liveCheck reports process liveness only.
// @Summary Liveness Check
// @Description Check if the broadcast service process is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "broadcast-srv",
	})
}
