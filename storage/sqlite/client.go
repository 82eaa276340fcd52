package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"BoostMe/config"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
)`

var (
	db   *sql.DB
	once sync.Once
	err  error
)

// Init 打开本地数据库文件并建表
func Init() error {
	once.Do(func() {
		db, err = Open(config.Cfg.SQLitePath)
	})
	return err
}

// Open 打开指定路径的数据库，":memory:" 用于测试
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// 单连接，避免 :memory: 多连接各自一份库，也避免文件写锁竞争
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(context.Background(), schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return conn, nil
}

func DB() *sql.DB {
	if db == nil {
		panic("SQLite database not init")
	}
	return db
}

func Close(ctx context.Context) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
