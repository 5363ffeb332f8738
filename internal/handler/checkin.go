package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"AreYouAlive/internal/model"
	"AreYouAlive/internal/service"
	pkgerrors "AreYouAlive/pkg/errors"
	"AreYouAlive/pkg/response"
)

// CompleteCheckin 老人端点击"报平安"
// POST /api/checkin
func CompleteCheckin(ctx context.Context, c *app.RequestContext) {
	var req model.CheckinRequest
	if err := c.Bind(&req); err != nil {
		response.Error(ctx, c, pkgerrors.InvalidRequest)
		return
	}

	rec, err := service.CheckIn().CompleteCheckin(ctx, req.Location)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, rec.Time)
}

// GetCheckStatus 监控端轮询当天签到状态
// GET /api/check-status
func GetCheckStatus(ctx context.Context, c *app.RequestContext) {
	response.JSON(ctx, c, service.CheckIn().GetTodayStatus(ctx))
}
