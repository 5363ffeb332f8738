package storage

import (
	"AreYouAlive/storage/redis"
)

// 统一 init storage 层，当前只有 Redis 一种外部存储

func Init() error {
	if err := redis.Init(); err != nil {
		return err
	}

	return nil
}
