package middleware

import (
	"go.opentelemetry.io/otel"
)

// Init 初始化中间件依赖的指标
func Init() error {
	return InitMetrics(otel.Meter("areyoualive"))
}
