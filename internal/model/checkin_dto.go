package model

// ========== CheckIn 相关 DTO ==========

// CheckinRequest 签到请求体
type CheckinRequest struct {
	Location *Location `json:"location"`
}

// StatusResponse 状态查询响应。
// checkedIn/data/currentHour/remindHour/today 是监控页的既有契约；
// alertLevel 由服务端评估，省得每个前端都重复推导
type StatusResponse struct {
	CheckedIn   bool           `json:"checkedIn"`
	Data        *CheckinRecord `json:"data"`
	CurrentHour int            `json:"currentHour"`
	RemindHour  int            `json:"remindHour"`
	Today       string         `json:"today"`
	AlertLevel  string         `json:"alertLevel"`
}
