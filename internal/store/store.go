// Package store 是设备本地键值存储的统一抽象，值一律为 JSON 字符串。
package store

import "context"

// Store 本地键值存储。Get 在键不存在时返回 ok=false 且 err=nil。
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Clear 删除本应用写入的全部键
	Clear(ctx context.Context) error
}
