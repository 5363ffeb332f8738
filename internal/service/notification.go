package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"AreYouAlive/config"
	"AreYouAlive/internal/model"
	pkgerrors "AreYouAlive/pkg/errors"
	"AreYouAlive/pkg/logger"
	"AreYouAlive/pkg/metrics"
	"AreYouAlive/pkg/resend"
	"AreYouAlive/pkg/snowflake"
)

// EmailSender 邮件投递通道
type EmailSender interface {
	Send(ctx context.Context, msg *resend.Email) error
}

// NotificationService 签到成功后的邮件通知。
// 单次尝试：失败记日志和指标，不重试不排队，丢一封通知在
// 本系统的风险模型里是可接受的损失
type NotificationService struct {
	sender EmailSender
	from   string
	to     string
}

var (
	notificationService *NotificationService
	notificationOnce    sync.Once
)

func Notification() *NotificationService {
	notificationOnce.Do(func() {
		var sender EmailSender
		if c := resend.Get(); c != nil {
			sender = c
		}
		notificationService = NewNotificationService(sender)
	})
	return notificationService
}

func NewNotificationService(sender EmailSender) *NotificationService {
	return &NotificationService{
		sender: sender,
		from:   config.Cfg.NotifyFrom,
		to:     config.Cfg.NotifyEmail,
	}
}

// Dispatch 构造并投递一封签到通知邮件
func (s *NotificationService) Dispatch(ctx context.Context, dateKey string, rec *model.CheckinRecord) error {
	if s.sender == nil || s.to == "" {
		return pkgerrors.NotifyNotConfigured
	}

	msg := &resend.Email{
		From:    s.from,
		To:      []string{s.to},
		Subject: "老人签到通知 - " + dateKey,
		HTML:    buildCheckinEmail(rec),
	}

	// dispatch_id 既做日志关联，也做投递端的幂等键
	if id, err := snowflake.NextID(); err == nil {
		msg.IdempotencyKey = strconv.FormatInt(id, 10)
	}

	start := time.Now()
	err := s.sender.Send(ctx, msg)
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordNotifyFailed(ctx, "delivery", duration)
		logger.Logger.Error("Notification delivery failed",
			zap.String("date", dateKey),
			zap.String("dispatch_id", msg.IdempotencyKey),
			zap.Error(err),
		)
		return pkgerrors.NotifyDeliveryFailed
	}

	metrics.RecordNotifySent(ctx, duration)
	logger.Logger.Info("Notification delivered",
		zap.String("date", dateKey),
		zap.String("dispatch_id", msg.IdempotencyKey),
	)

	return nil
}

// buildCheckinEmail 渲染通知邮件正文，有定位时附带高德地图链接
func buildCheckinEmail(rec *model.CheckinRecord) string {
	locationBlock := ""
	if rec.Location != nil {
		locationBlock = fmt.Sprintf(`
      <div style="margin-top: 20px; padding: 15px; background: #f9f9f9; border-radius: 8px;">
        <p style="margin: 0; color: #666;">📍 签到位置：</p>
        <p style="margin: 5px 0 0; font-weight: bold;">
          <a href="%s" style="color: #3498db; text-decoration: none;">查看高德地图 &rarr;</a>
        </p>
      </div>`, rec.Location.MapLink())
	}

	return fmt.Sprintf(`
    <div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
      <h2 style="color: #2ecc71;">✅ 老人已签到</h2>
      <p>您的家属已于 <strong>%s</strong> 完成今日安全签到。</p>%s
      <p style="margin-top: 30px; font-size: 12px; color: #999;">此条信息由"死了吗"App自动发送。祝您家人安康。</p>
    </div>`, rec.Time, locationBlock)
}
