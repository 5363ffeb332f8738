package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"AreYouAlive/config"
	"AreYouAlive/internal/handler"
	"AreYouAlive/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	// 签到 API
	api := h.Group("/api")
	{
		if config.Cfg.RateLimitEnabled {
			api.POST("/checkin", middleware.CheckinRateLimitMiddleware(), handler.CompleteCheckin)
		} else {
			api.POST("/checkin", handler.CompleteCheckin)
		}

		// 监控页轮询用，任意方法均可
		api.Any("/check-status", handler.GetCheckStatus)
	}

	// 静态页面
	h.GET("/child", handler.GuardianPage)
	h.GET("/", handler.SeniorPage)
	h.NoRoute(handler.SeniorPage) // 未知路径回落到老人端页面
}
