package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"AreYouAlive/internal/model"
	"AreYouAlive/storage/redis"
)

// 当天签到记录的存取。状态全部外置在 Redis，
// 进程内不缓存，每次调用都重新读写

const checkinKeyPrefix = "checkin"

type CheckinStore struct{}

func NewCheckinStore() *CheckinStore {
	return &CheckinStore{}
}

// SaveRecord 以日期键写入当天的签到记录。
// 同一天重复写入直接覆盖（last-write-wins，无条件写）
func (s *CheckinStore) SaveRecord(ctx context.Context, dateKey string, rec *model.CheckinRecord, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal checkin record: %w", err)
	}

	key := redis.Key(checkinKeyPrefix, dateKey)
	if err := redis.Client().Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save checkin record: %w", err)
	}
	return nil
}

// GetRecord 读取指定日期键的签到记录，键不存在返回 (nil, nil)，
// 缺席是常态而不是错误
func (s *CheckinStore) GetRecord(ctx context.Context, dateKey string) (*model.CheckinRecord, error) {
	key := redis.Key(checkinKeyPrefix, dateKey)

	data, err := redis.Client().Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkin record: %w", err)
	}

	var rec model.CheckinRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkin record: %w", err)
	}
	return &rec, nil
}
