package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"BoostMe/pkg/database"
)

// SQL 基于 kv 表的文件存储
type SQL struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

func (s *SQL) Get(ctx context.Context, key string) (v string, found bool, err error) {
	ctx, done := database.Observe(ctx, "get", key)
	defer func() { done(err) }()

	err = s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) (err error) {
	ctx, done := database.Observe(ctx, "set", key)
	defer func() { done(err) }()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, strftime('%s','now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Remove(ctx context.Context, key string) (err error) {
	ctx, done := database.Observe(ctx, "delete", key)
	defer func() { done(err) }()

	if _, err = s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite delete %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Clear(ctx context.Context) (err error) {
	ctx, done := database.Observe(ctx, "clear", "*")
	defer func() { done(err) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite clear: %w", err)
	}
	return tx.Commit()
}
