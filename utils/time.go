package utils

import (
	"time"
)

// 固定时区偏移的民用时间计算。
// 服务端所在机器的时区与老人所在时区无关，
// 因此所有"今天"的推导都只依赖 (UTC 时刻, 配置偏移)，每次调用重新计算。

const (
	dayKeyLayout    = "2006-01-02"
	localTimeLayout = "2006/01/02 15:04:05"
)

// LocalTime 将任意时刻换算到固定偏移时区
func LocalTime(t time.Time, offsetHours int) time.Time {
	zone := time.FixedZone("", offsetHours*3600)
	return t.In(zone)
}

// DayKey 计算给定时刻在固定偏移时区下的日期键（YYYY-MM-DD），
// 作为当天签到记录的唯一标识
func DayKey(t time.Time, offsetHours int) string {
	return LocalTime(t, offsetHours).Format(dayKeyLayout)
}

// FormatLocal 渲染人类可读的本地时间戳，页面按空格切分取时间部分
func FormatLocal(t time.Time, offsetHours int) string {
	return LocalTime(t, offsetHours).Format(localTimeLayout)
}

// LocalHour 给定时刻在固定偏移时区下的小时数（0-23）
func LocalHour(t time.Time, offsetHours int) int {
	return LocalTime(t, offsetHours).Hour()
}
