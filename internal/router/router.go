package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"Habitual/internal/handler"
	"Habitual/internal/middleware"
)

func Register(h *server.Hertz) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/token/refresh", handler.RefreshToken)
	}

	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware())
	users.Use(middleware.GeneralRateLimitMiddleware())
	{
		users.GET("/me", handler.GetUserProfile)
		users.PUT("/me/settings", handler.UpdateUserSettings)
	}

	calendars := v1.Group("/calendars")
	calendars.Use(middleware.AuthMiddleware())
	calendars.Use(middleware.GeneralRateLimitMiddleware())
	{
		calendars.GET("", handler.ListCalendars)
		calendars.POST("", handler.CreateCalendar)
		calendars.GET("/:calendar_id", handler.GetCalendar)
		calendars.PATCH("/:calendar_id", handler.UpdateCalendar)
		calendars.DELETE("/:calendar_id", handler.DeleteCalendar)
		calendars.PUT("/:calendar_id/days/:date", handler.MarkDay)
		calendars.GET("/:calendar_id/days", handler.ListDays)
		calendars.GET("/:calendar_id/streak", handler.GetStreak)
	}
}
