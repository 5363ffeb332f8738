package handler

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"AreYouAlive/web"
)

const htmlContentType = "text/html; charset=utf-8"

// SeniorPage 老人端签到页（默认页）
// GET /
func SeniorPage(ctx context.Context, c *app.RequestContext) {
	c.Data(http.StatusOK, htmlContentType, web.SeniorPage)
}

// GuardianPage 家属端监控面板
// GET /child
func GuardianPage(ctx context.Context, c *app.RequestContext) {
	c.Data(http.StatusOK, htmlContentType, web.GuardianPage)
}
