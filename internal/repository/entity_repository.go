package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/edustack/admin-api/internal/pagination"
	"github.com/edustack/admin-api/internal/server"
	"github.com/edustack/admin-api/internal/transform"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// listCacheTTL bounds staleness of cached list pages; writes also bump
// the entity version key, which invalidates every cached page at once.
const listCacheTTL = 5 * time.Minute

// ListResult is one page of records plus the unpaged total.
type ListResult struct {
	Items []transform.Value
	Total int64
}

// cachedList is the Redis serialization of a ListResult. Items are
// stored in their plain interface{} shape so encoding/json round-trips
// them without knowing about Value.
type cachedList struct {
	Items []any `json:"items"`
	Total int64 `json:"total"`
}

// EntityRepository implements CRUD over the managed entity tables.
// Records are dynamic: rows come back as Value trees keyed by
// camelCase field names, and every read passes through the egress
// materializer before being returned.
type EntityRepository struct {
	server *server.Server
}

func NewEntityRepository(s *server.Server) *EntityRepository {
	return &EntityRepository{server: s}
}

func (r *EntityRepository) pool() *pgxpool.Pool {
	return r.server.DB.Pool
}

func (r *EntityRepository) log() *zerolog.Logger {
	return r.server.Logger
}

// List returns one page of records. Results are cached per entity
// version; any write to the entity bumps the version and orphans the
// old pages until their TTL expires.
func (r *EntityRepository) List(ctx context.Context, ent Entity, params pagination.Params, sortBy, sortOrder string) (ListResult, error) {
	orderColumn, ok := ent.SortColumns[sortBy]
	if !ok {
		orderColumn = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	cacheKey := r.listCacheKey(ctx, ent, params, orderColumn, sortOrder)
	if result, ok := r.cachedList(ctx, cacheKey); ok {
		return result, nil
	}

	where := ""
	args := []any{}
	if params.Search != "" {
		where = fmt.Sprintf(" WHERE %s ILIKE $1", ent.SearchColumn)
		args = append(args, "%"+params.Search+"%")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT count(*) FROM %s%s", ent.Table, where)
	if err := r.pool().QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return ListResult{}, errors.Wrapf(err, "count %s", ent.Table)
	}

	listQuery := fmt.Sprintf(
		"SELECT * FROM %s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		ent.Table, where, orderColumn, strings.ToUpper(sortOrder), len(args)+1, len(args)+2,
	)
	args = append(args, params.Limit, params.Skip())

	rows, err := r.pool().Query(ctx, listQuery, args...)
	if err != nil {
		return ListResult{}, errors.Wrapf(err, "list %s", ent.Table)
	}
	defer rows.Close()

	items, err := r.collectRows(ent, rows)
	if err != nil {
		return ListResult{}, err
	}

	result := ListResult{Items: items, Total: total}
	r.storeList(ctx, cacheKey, result)
	return result, nil
}

// GetByID fetches a single record. A missing row surfaces as an
// annotated pgx.ErrNoRows so the error funnel can answer with an
// entity-specific 404.
func (r *EntityRepository) GetByID(ctx context.Context, ent Entity, id string) (transform.Value, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", ent.Table)

	rows, err := r.pool().Query(ctx, query, id)
	if err != nil {
		return transform.Null(), errors.Wrapf(err, "get %s", ent.Table)
	}
	defer rows.Close()

	items, err := r.collectRows(ent, rows)
	if err != nil {
		return transform.Null(), err
	}
	if len(items) == 0 {
		return transform.Null(), errors.Wrapf(pgx.ErrNoRows, "table:%s: id %s", ent.Table, id)
	}
	return items[0], nil
}

// Create inserts a record built from the (already sanitized) payload
// and returns the stored row.
func (r *EntityRepository) Create(ctx context.Context, ent Entity, record transform.Value) (transform.Value, error) {
	columns, values, err := recordColumns(record)
	if err != nil {
		return transform.Null(), err
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		ent.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)

	created, err := r.queryOne(ctx, ent, query, values...)
	if err != nil {
		return transform.Null(), err
	}

	r.bumpVersion(ctx, ent)
	return created, nil
}

// Update applies the given fields to an existing record and returns
// the stored row.
func (r *EntityRepository) Update(ctx context.Context, ent Entity, id string, record transform.Value) (transform.Value, error) {
	columns, values, err := recordColumns(record)
	if err != nil {
		return transform.Null(), err
	}

	assignments := make([]string, len(columns))
	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	assignments = append(assignments, "updated_at = now()")

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING *",
		ent.Table, strings.Join(assignments, ", "), len(columns)+1,
	)
	values = append(values, id)

	updated, err := r.queryOne(ctx, ent, query, values...)
	if err != nil {
		return transform.Null(), err
	}
	if updated.Kind == transform.KindNull {
		return transform.Null(), errors.Wrapf(pgx.ErrNoRows, "table:%s: id %s", ent.Table, id)
	}

	r.bumpVersion(ctx, ent)
	return updated, nil
}

// Upsert inserts the record or, on a conflict over conflictColumn,
// updates the existing row with the record's fields. Used by the user
// sync job, which keys on external_id.
func (r *EntityRepository) Upsert(ctx context.Context, ent Entity, conflictColumn string, record transform.Value) (transform.Value, error) {
	columns, values, err := recordColumns(record)
	if err != nil {
		return transform.Null(), err
	}

	placeholders := make([]string, len(columns))
	assignments := make([]string, 0, len(columns))
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		if col != conflictColumn {
			assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		}
	}
	assignments = append(assignments, "updated_at = now()")

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s RETURNING *",
		ent.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
		conflictColumn, strings.Join(assignments, ", "),
	)

	stored, err := r.queryOne(ctx, ent, query, values...)
	if err != nil {
		return transform.Null(), err
	}

	r.bumpVersion(ctx, ent)
	return stored, nil
}

// Delete removes a record. Deleting a missing id reports the annotated
// not-found error, same as GetByID.
func (r *EntityRepository) Delete(ctx context.Context, ent Entity, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", ent.Table)

	tag, err := r.pool().Exec(ctx, query, id)
	if err != nil {
		return errors.Wrapf(err, "delete %s", ent.Table)
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(pgx.ErrNoRows, "table:%s: id %s", ent.Table, id)
	}

	r.bumpVersion(ctx, ent)
	return nil
}

// queryOne runs a query expected to return at most one row and
// materializes it. A zero-row result yields a Null value; callers that
// require a row translate that themselves.
func (r *EntityRepository) queryOne(ctx context.Context, ent Entity, query string, args ...any) (transform.Value, error) {
	rows, err := r.pool().Query(ctx, query, args...)
	if err != nil {
		return transform.Null(), errors.Wrapf(err, "query %s", ent.Table)
	}
	defer rows.Close()

	items, err := r.collectRows(ent, rows)
	if err != nil {
		return transform.Null(), err
	}
	if len(items) == 0 {
		return transform.Null(), nil
	}
	return items[0], nil
}

// collectRows converts every row into a camelCase-keyed Value record
// and runs the egress materializer over it. This is the single exit
// point of the persistence layer, so no raw storage path can leave the
// service unmaterialized.
func (r *EntityRepository) collectRows(ent Entity, rows pgx.Rows) ([]transform.Value, error) {
	fields := rows.FieldDescriptions()

	var items []transform.Value
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, errors.Wrapf(err, "scan %s", ent.Table)
		}

		rec := make(map[string]any, len(fields))
		for i, fd := range fields {
			rec[snakeToCamel(string(fd.Name))] = normalizeDBValue(values[i])
		}

		v, err := transform.FromAny(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "convert %s row", ent.Table)
		}

		items = append(items, r.server.Materializer.MaterializeResult(ent.Type, v))
	}
	return items, rows.Err()
}

// listCacheKey includes the entity's current version so that bumping
// the version invalidates all cached pages without scanning keys.
func (r *EntityRepository) listCacheKey(ctx context.Context, ent Entity, params pagination.Params, orderColumn, sortOrder string) string {
	version := int64(0)
	if r.server.Redis != nil {
		if v, err := r.server.Redis.Get(ctx, versionKey(ent)).Int64(); err == nil {
			version = v
		}
	}
	return fmt.Sprintf("list:%s:v%d:p%d:l%d:o%s.%s:q%s",
		ent.Table, version, params.Page, params.Limit, orderColumn, sortOrder, params.Search)
}

func (r *EntityRepository) cachedList(ctx context.Context, key string) (ListResult, bool) {
	if r.server.Redis == nil {
		return ListResult{}, false
	}

	raw, err := r.server.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log().Warn().Err(err).Str("key", key).Msg("list cache read failed")
		}
		return ListResult{}, false
	}

	var cached cachedList
	if err := json.Unmarshal(raw, &cached); err != nil {
		return ListResult{}, false
	}

	items := make([]transform.Value, 0, len(cached.Items))
	for _, item := range cached.Items {
		v, err := transform.FromAny(item)
		if err != nil {
			return ListResult{}, false
		}
		items = append(items, v)
	}
	return ListResult{Items: items, Total: cached.Total}, true
}

// storeList caches a page best-effort; failures only cost the cache.
func (r *EntityRepository) storeList(ctx context.Context, key string, result ListResult) {
	if r.server.Redis == nil {
		return
	}

	cached := cachedList{Items: make([]any, len(result.Items)), Total: result.Total}
	for i, item := range result.Items {
		cached.Items[i] = item.ToAny()
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := r.server.Redis.Set(ctx, key, raw, listCacheTTL).Err(); err != nil {
		r.log().Warn().Err(err).Str("key", key).Msg("list cache write failed")
	}
}

func (r *EntityRepository) bumpVersion(ctx context.Context, ent Entity) {
	if r.server.Redis == nil {
		return
	}
	if err := r.server.Redis.Incr(ctx, versionKey(ent)).Err(); err != nil {
		r.log().Warn().Err(err).Str("table", ent.Table).Msg("cache version bump failed")
	}
}

func versionKey(ent Entity) string {
	return "version:" + ent.Table
}
