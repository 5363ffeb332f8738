package model

import "strconv"

const amapMarkerURL = "https://uri.amap.com/marker?position="

// Location 签到时的地理位置，客户端未授权定位时缺省
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MapLink 高德地图标记链接，position 参数顺序为 经度,纬度
func (l *Location) MapLink() string {
	return amapMarkerURL +
		strconv.FormatFloat(l.Lng, 'f', -1, 64) + "," +
		strconv.FormatFloat(l.Lat, 'f', -1, 64)
}

// CheckinRecord 每日签到记录，存储中的唯一实体。
// 以日期键标识，当天首次签到时创建，重复签到覆盖为新时间戳，
// 到期由存储的 TTL 自行清理
type CheckinRecord struct {
	CheckedIn bool      `json:"checkedIn"`
	Time      string    `json:"time"` // 固定偏移时区下的人类可读时间
	Location  *Location `json:"location"`
}
