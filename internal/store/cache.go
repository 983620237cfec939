package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/evalyze/evalyze/internal/kv"
)

const cacheTable = "cache_entries"

// cacheRepo implements kv.Store on the cache_entries table.
type cacheRepo struct {
	s *Store
}

var _ kv.Store = (*cacheRepo)(nil)

func (r *cacheRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := r.s.builder().
		Select("cache_value").
		From(entsql.Table(cacheTable)).
		Where(entsql.EQ("cache_key", key)).
		Query()

	var value []byte
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (r *cacheRepo) Set(ctx context.Context, key string, value []byte) error {
	query, args := r.s.builder().
		Insert(cacheTable).
		Columns("cache_key", "cache_value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("cache_key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *cacheRepo) Has(ctx context.Context, key string) (bool, error) {
	query, args := r.s.builder().
		Select(entsql.Count("*")).
		From(entsql.Table(cacheTable)).
		Where(entsql.EQ("cache_key", key)).
		Query()

	var n int
	if err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("has %q: %w", key, err)
	}
	return n > 0, nil
}
