package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"AreYouAlive/pkg/errors"
)

// CheckinSuccess 签到成功响应格式（老人端页面依赖该结构）
type CheckinSuccess struct {
	Success bool   `json:"success"`
	Time    string `json:"time"`
}

// CheckinFailure 签到失败响应格式
type CheckinFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func errorToHTTPStatus(err error) int {
	def, ok := err.(errors.Definition)
	if !ok {
		return http.StatusInternalServerError
	}

	// 根据错误码映射 HTTP 状态码
	switch def.Code {
	case "RATE_LIMITED":
		return http.StatusTooManyRequests // 429
	case "INVALID_REQUEST":
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}

// Success 返回签到成功响应
func Success(ctx context.Context, c *app.RequestContext, localTime string) {
	c.JSON(http.StatusOK, CheckinSuccess{
		Success: true,
		Time:    localTime,
	})
}

// Error 返回签到失败响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	var message string
	if def, ok := err.(errors.Definition); ok {
		message = def.Message
	} else {
		message = err.Error()
	}

	c.JSON(errorToHTTPStatus(err), CheckinFailure{
		Success: false,
		Error:   message,
	})
}

// JSON 返回任意 200 响应（状态查询端点使用，读失败已在服务层降级）
func JSON(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, data)
}
