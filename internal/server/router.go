package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/lifeweeks-backend/internal/http/handlers"
	"github.com/yungbote/lifeweeks-backend/internal/http/middleware"
	"github.com/yungbote/lifeweeks-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	HealthHandler   *handlers.HealthHandler
	ProfileHandler  *handlers.ProfileHandler
	CalendarHandler *handlers.CalendarHandler
	WeekNoteHandler *handlers.WeekNoteHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware("lifeweeks-backend"))
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/", cfg.HealthHandler.Root)
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/user", cfg.ProfileHandler.SaveProfile)
		api.GET("/user", cfg.ProfileHandler.GetProfile)
		api.GET("/calendar", cfg.CalendarHandler.GetCalendar)
		api.POST("/week-note", cfg.WeekNoteHandler.SaveWeekNote)
		api.POST("/week-note/voice", cfg.WeekNoteHandler.SaveVoiceNote)
	}

	return router
}
