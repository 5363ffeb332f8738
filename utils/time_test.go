package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	// UTC 15:59:59 在 UTC+8 是当天 23:59:59
	beforeMidnight := time.Date(2025, 3, 1, 15, 59, 59, 0, time.UTC)
	assert.Equal(t, "2025-03-01", DayKey(beforeMidnight, 8))

	// 两秒之后已经跨入本地新的一天
	afterMidnight := time.Date(2025, 3, 1, 16, 0, 1, 0, time.UTC)
	assert.Equal(t, "2025-03-02", DayKey(afterMidnight, 8))
}

func TestDayKeyIgnoresServerZone(t *testing.T) {
	// 同一瞬间换成任意服务器时区表示，日期键不变
	instant := time.Date(2025, 3, 1, 16, 0, 1, 0, time.UTC)
	newYork := instant.In(time.FixedZone("EST", -5*3600))

	assert.Equal(t, DayKey(instant, 8), DayKey(newYork, 8))
}

func TestLocalHour(t *testing.T) {
	cases := []struct {
		utcHour int
		want    int
	}{
		{0, 8},
		{10, 18},
		{16, 0},
		{23, 7},
	}

	for _, tc := range cases {
		instant := time.Date(2025, 6, 15, tc.utcHour, 30, 0, 0, time.UTC)
		assert.Equal(t, tc.want, LocalHour(instant, 8))
	}
}

func TestFormatLocal(t *testing.T) {
	instant := time.Date(2025, 3, 1, 6, 5, 9, 0, time.UTC)
	// 页面按空格切分取时间部分，格式必须保持 日期 空格 时间
	assert.Equal(t, "2025/03/01 14:05:09", FormatLocal(instant, 8))
}
