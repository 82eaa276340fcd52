package store

import (
	"BoostMe/config"
	"BoostMe/storage/redis"
	"BoostMe/storage/sqlite"
)

// FromConfig 按 STORE_DRIVER 返回已初始化的存储，需先调用 storage.Init
func FromConfig() Store {
	switch config.Cfg.StoreDriver {
	case "redis":
		return NewRedis(redis.Client(), config.Cfg.RedisPrefix)
	case "sqlite":
		return NewSQL(sqlite.DB())
	default:
		return NewMemory()
	}
}
