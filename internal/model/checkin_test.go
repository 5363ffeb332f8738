package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapLink(t *testing.T) {
	loc := &Location{Lat: 31.23, Lng: 121.47}

	// 高德 marker 链接的 position 参数是 经度,纬度
	assert.Equal(t, "https://uri.amap.com/marker?position=121.47,31.23", loc.MapLink())
}

func TestCheckinRecordRoundTrip(t *testing.T) {
	rec := &CheckinRecord{
		CheckedIn: true,
		Time:      "2025/03/01 14:05:09",
		Location:  &Location{Lat: 31.23, Lng: 121.47},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var got CheckinRecord
	require.NoError(t, json.Unmarshal(data, &got))

	require.NotNil(t, got.Location)
	assert.Equal(t, 31.23, got.Location.Lat)
	assert.Equal(t, 121.47, got.Location.Lng)
	assert.Equal(t, rec.Time, got.Time)
	assert.True(t, got.CheckedIn)
}

func TestCheckinRecordAbsentLocation(t *testing.T) {
	data, err := json.Marshal(&CheckinRecord{CheckedIn: true, Time: "2025/03/01 09:00:00"})
	require.NoError(t, err)

	// 未授权定位时 location 序列化为显式 null，监控页据此隐藏地图行
	assert.JSONEq(t, `{"checkedIn":true,"time":"2025/03/01 09:00:00","location":null}`, string(data))
}
