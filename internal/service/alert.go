package service

// AlertLevel 监控端的告警级别
type AlertLevel string

const (
	AlertSafe    AlertLevel = "safe"    // 今日已签到
	AlertWaiting AlertLevel = "waiting" // 未签到，尚在截止时间前
	AlertOverdue AlertLevel = "overdue" // 未签到且已到截止时间
)

// EvaluateAlert 由 (是否已签到, 当前本地小时, 截止小时) 推导告警级别。
// 纯函数，每次查询重新计算，不缓存；到达截止小时即视为超时（>= 而非 >）
func EvaluateAlert(checkedIn bool, currentHour, remindHour int) AlertLevel {
	if checkedIn {
		return AlertSafe
	}
	if currentHour >= remindHour {
		return AlertOverdue
	}
	return AlertWaiting
}
