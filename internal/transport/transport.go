package transport

import (
	"net/http"
	"slices"

	"github.com/ds124wfegd/jpegify/config"
	"github.com/ds124wfegd/jpegify/internal/pkg/templates"
	"github.com/ds124wfegd/jpegify/internal/transport/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitRoutes(imgHandler *ImageHandler, pageHandler *PageHandler, cfg config.AppConfig) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	// Pages
	router.GET("/", pageHandler.Page(templates.Index))
	router.GET("/style.css", pageHandler.Page(templates.Style))
	router.GET("/main.js", pageHandler.Page(templates.Script))

	// Images
	router.POST("/upload", imgHandler.UploadImage)
	router.GET(cfg.ImagesPath+"/:id", imgHandler.GetImage)

	// Health check
	router.GET("/health", imgHandler.Health)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
