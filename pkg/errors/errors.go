package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 请求层错误。
var (
	InvalidRequest = Definition{Code: "INVALID_REQUEST", Message: "Invalid request payload"}
	RateLimited    = Definition{Code: "RATE_LIMITED", Message: "Too many check-in attempts"}
)

// 存储层错误。写失败对签到调用方可见；
// 状态查询的读失败降级为"未签到"，不会走到这里的传播路径。
var (
	StorageWriteFailed = Definition{Code: "STORAGE_WRITE_FAILED", Message: "Failed to persist check-in record"}
	StorageReadFailed  = Definition{Code: "STORAGE_READ_FAILED", Message: "Failed to read check-in record"}
)

// 通知模块错误。仅用于日志与指标观测，从不传播给签到调用方。
var (
	NotifyDeliveryFailed = Definition{Code: "NOTIFY_DELIVERY_FAILED", Message: "Notification delivery failed"}
	NotifyNotConfigured  = Definition{Code: "NOTIFY_NOT_CONFIGURED", Message: "Notification channel not configured"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	InvalidRequest.Code:       InvalidRequest,
	RateLimited.Code:          RateLimited,
	StorageWriteFailed.Code:   StorageWriteFailed,
	StorageReadFailed.Code:    StorageReadFailed,
	NotifyDeliveryFailed.Code: NotifyDeliveryFailed,
	NotifyNotConfigured.Code:  NotifyNotConfigured,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
