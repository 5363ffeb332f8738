package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"AreYouAlive/config"
	"AreYouAlive/internal/cache"
	"AreYouAlive/internal/model"
	pkgerrors "AreYouAlive/pkg/errors"
	"AreYouAlive/pkg/logger"
	"AreYouAlive/pkg/metrics"
	"AreYouAlive/utils"
)

// RecordStore 当天签到记录的外部存储
type RecordStore interface {
	SaveRecord(ctx context.Context, dateKey string, rec *model.CheckinRecord, ttl time.Duration) error
	GetRecord(ctx context.Context, dateKey string) (*model.CheckinRecord, error)
}

// Notifier 签到落库后的通知投递，失败只观测不回滚
type Notifier interface {
	Dispatch(ctx context.Context, dateKey string, rec *model.CheckinRecord) error
}

type CheckInService struct {
	store    RecordStore
	notifier Notifier

	offsetHours int
	remindHour  int
	retention   time.Duration

	now func() time.Time
}

var (
	checkInService *CheckInService
	checkInOnce    sync.Once
)

func CheckIn() *CheckInService {
	checkInOnce.Do(func() {
		checkInService = NewCheckInService(cache.NewCheckinStore(), Notification())
	})

	return checkInService
}

func NewCheckInService(store RecordStore, notifier Notifier) *CheckInService {
	cfg := config.Cfg
	return &CheckInService{
		store:       store,
		notifier:    notifier,
		offsetHours: cfg.TimezoneOffsetHours,
		remindHour:  cfg.RemindHour,
		retention:   time.Duration(cfg.CheckinRetentionSeconds()) * time.Second,
		now:         time.Now,
	}
}

// CompleteCheckin 完成当日签到：重新推导日期键，写入带 TTL 的记录，
// 落库成功后同步触发一次通知投递。
// 同一天重复调用会用新时间戳覆盖旧记录
func (s *CheckInService) CompleteCheckin(ctx context.Context, loc *model.Location) (*model.CheckinRecord, error) {
	now := s.now()
	dateKey := utils.DayKey(now, s.offsetHours)

	rec := &model.CheckinRecord{
		CheckedIn: true,
		Time:      utils.FormatLocal(now, s.offsetHours),
		Location:  loc,
	}

	if err := s.store.SaveRecord(ctx, dateKey, rec, s.retention); err != nil {
		logger.Logger.Error("Failed to persist check-in record",
			zap.String("date", dateKey),
			zap.Error(err),
		)
		return nil, pkgerrors.StorageWriteFailed
	}

	metrics.RecordCheckin(ctx, loc != nil)

	logger.Logger.Info("Check-in recorded",
		zap.String("date", dateKey),
		zap.String("time", rec.Time),
		zap.Bool("has_location", loc != nil),
	)

	// post-commit 通知：记录已落库即为签到成功，
	// 投递失败不向调用方传播
	if s.notifier != nil {
		if err := s.notifier.Dispatch(ctx, dateKey, rec); err != nil {
			logger.Logger.Warn("Check-in recorded but notification dispatch failed",
				zap.String("date", dateKey),
				zap.Error(err),
			)
		}
	}

	return rec, nil
}

// GetTodayRecord 读取今天的签到记录，不存在返回 nil
func (s *CheckInService) GetTodayRecord(ctx context.Context) (*model.CheckinRecord, error) {
	dateKey := utils.DayKey(s.now(), s.offsetHours)
	return s.store.GetRecord(ctx, dateKey)
}

// GetTodayStatus 组装状态查询响应。
// 存储读失败降级为"未签到"，监控页的轮询永远能拿到结果
func (s *CheckInService) GetTodayStatus(ctx context.Context) *model.StatusResponse {
	now := s.now()
	dateKey := utils.DayKey(now, s.offsetHours)
	currentHour := utils.LocalHour(now, s.offsetHours)

	rec, err := s.store.GetRecord(ctx, dateKey)
	if err != nil {
		logger.Logger.Warn("Failed to read check-in record, degrading to absent",
			zap.String("date", dateKey),
			zap.Error(err),
		)
		rec = nil
	}

	level := EvaluateAlert(rec != nil, currentHour, s.remindHour)
	metrics.RecordStatusQuery(ctx, string(level))

	return &model.StatusResponse{
		CheckedIn:   rec != nil,
		Data:        rec,
		CurrentHour: currentHour,
		RemindHour:  s.remindHour,
		Today:       dateKey,
		AlertLevel:  string(level),
	}
}
