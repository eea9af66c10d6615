package server

import (
	"time"

	httpHandler "leadbridge/interfaces/http"
	"leadbridge/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	healthHandler httpHandler.IHealthHandler,
	leadHandler httpHandler.ILeadHandler,
	secretKey string,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(allowedOrigins)))

	router.GET("/healthz", healthHandler.Healthz)

	api := router.Group("api")
	api.Use(middleware.Auth(secretKey))

	api.GET("/options", leadHandler.Options)

	leads := api.Group("/leads")
	{
		leads.POST("", leadHandler.SubmitManual)
		leads.POST("/upload/:platform", leadHandler.SubmitUpload)
	}

	api.GET("/batches/:id/report", leadHandler.DownloadReport)

	api.GET("/errors", leadHandler.ErrorLog)
	api.GET("/errors/export", leadHandler.ExportErrorLog)

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
		return config
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			config.AllowAllOrigins = true
			return config
		}
	}
	config.AllowOrigins = allowedOrigins
	config.AllowCredentials = true
	return config
}
