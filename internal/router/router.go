package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rollcall-dev/rollcall/internal/handlers"
	"github.com/rollcall-dev/rollcall/internal/middleware"
	"github.com/rollcall-dev/rollcall/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.HealthCheck)

	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/token", handlers.Token)
		auth.POST("/login", handlers.Login)
		auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
	}

	events := r.Group("/events", middleware.AuthMiddleware())
	{
		events.GET("", handlers.ListEvents)
		events.POST("", handlers.CreateEvent)
		events.GET("/:event_id", handlers.GetEvent)
		events.PUT("/:event_id", handlers.UpdateEvent)
		events.DELETE("/:event_id", handlers.DeleteEvent)
	}

	attendances := r.Group("/attendances", middleware.AuthMiddleware())
	{
		attendances.GET("/events/:event_id", handlers.ListEventAttendances)
		attendances.GET("/my", handlers.ListMyAttendances)
		attendances.POST("", handlers.CreateAttendance)
		attendances.PUT("/:attendance_id", handlers.UpdateAttendance)
	}

	return r
}
