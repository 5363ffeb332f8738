package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	redisotel "AreYouAlive/pkg/redis"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 签到相关指标
	CheckinRecordedTotal metric.Int64Counter
	StatusQueriesTotal   metric.Int64Counter

	// 通知相关指标
	NotifySentTotal   metric.Int64Counter
	NotifyFailedTotal metric.Int64Counter
	NotifyDuration    metric.Float64Histogram
}

var (
	// 全局指标实例
	metrics *OTelMetrics
	// meter 用于创建指标
	meter = otel.Meter("areyoualive")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	m := &OTelMetrics{}
	var err error

	m.CheckinRecordedTotal, err = meter.Int64Counter(
		"checkin.recorded.total",
		metric.WithDescription("Total number of recorded daily check-ins"),
		metric.WithUnit("{checkin}"),
	)
	if err != nil {
		return err
	}

	m.StatusQueriesTotal, err = meter.Int64Counter(
		"checkin.status.queries.total",
		metric.WithDescription("Total number of status queries, by alert level"),
		metric.WithUnit("{query}"),
	)
	if err != nil {
		return err
	}

	m.NotifySentTotal, err = meter.Int64Counter(
		"notify.sent.total",
		metric.WithDescription("Total number of notification emails delivered"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return err
	}

	m.NotifyFailedTotal, err = meter.Int64Counter(
		"notify.failed.total",
		metric.WithDescription("Total number of failed notification deliveries"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return err
	}

	m.NotifyDuration, err = meter.Float64Histogram(
		"notify.duration",
		metric.WithDescription("Notification dispatch duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return err
	}

	if err := redisotel.InitRedisMetrics(meter); err != nil {
		return err
	}

	metrics = m
	return nil
}

// GetMetrics 返回全局指标实例，未初始化时为 nil
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordCheckin 记录一次成功落库的签到
func RecordCheckin(ctx context.Context, hasLocation bool) {
	if metrics == nil {
		return
	}
	metrics.CheckinRecordedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("checkin.has_location", hasLocation),
	))
}

// RecordStatusQuery 记录一次状态查询及其告警级别
func RecordStatusQuery(ctx context.Context, alertLevel string) {
	if metrics == nil {
		return
	}
	metrics.StatusQueriesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("alert.level", alertLevel),
	))
}

// RecordNotifySent 记录一次成功的通知投递
func RecordNotifySent(ctx context.Context, duration float64) {
	if metrics == nil {
		return
	}
	metrics.NotifySentTotal.Add(ctx, 1)
	metrics.NotifyDuration.Record(ctx, duration)
}

// RecordNotifyFailed 记录一次失败的通知投递
func RecordNotifyFailed(ctx context.Context, reason string, duration float64) {
	if metrics == nil {
		return
	}
	metrics.NotifyFailedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("notify.fail_reason", reason),
	))
	metrics.NotifyDuration.Record(ctx, duration)
}
