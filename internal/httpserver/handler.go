package httpserver

import (
	broadcastHTTP "broadcast-srv/internal/broadcast/delivery/http"
	"broadcast-srv/internal/middleware"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const Api = "/api/v1"

func (srv *HTTPServer) mapHandlers() error {
	mw := middleware.New(srv.logger, srv.discord)

	srv.gin.Use(mw.Recovery())
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints (no identity required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := srv.gin.Group(Api)

	broadcastHandler := broadcastHTTP.New(srv.logger, srv.broadcastUC, srv.enqueuer, srv.discord)
	broadcastHandler.RegisterRoutes(api, mw)

	return nil
}
