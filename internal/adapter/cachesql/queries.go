// Package cachesql builds the translation_cache statements shared by the
// SQLite and PostgreSQL cache stores. Only the placeholder format differs
// between the two.
package cachesql

import (
	"time"

	"github.com/Masterminds/squirrel"
)

const (
	Table = "translation_cache"

	ColKey        = "cache_key"
	ColValue      = "value"
	ColInsertedAt = "inserted_at"
)

// Queries builds statements with a fixed placeholder format.
type Queries struct {
	sb squirrel.StatementBuilderType
}

// New returns a builder using ph (squirrel.Question for SQLite,
// squirrel.Dollar for PostgreSQL).
func New(ph squirrel.PlaceholderFormat) Queries {
	return Queries{sb: squirrel.StatementBuilder.PlaceholderFormat(ph)}
}

// Get selects the value and insertion time of one key.
func (q Queries) Get(key string) (string, []any, error) {
	return q.sb.
		Select(ColValue, ColInsertedAt).
		From(Table).
		Where(squirrel.Eq{ColKey: key}).
		ToSql()
}

// Upsert inserts a key or overwrites its value and insertion time.
func (q Queries) Upsert(key, value string, insertedAt time.Time) (string, []any, error) {
	return q.sb.
		Insert(Table).
		Columns(ColKey, ColValue, ColInsertedAt).
		Values(key, value, ToMillis(insertedAt)).
		Suffix("ON CONFLICT (" + ColKey + ") DO UPDATE SET " +
			ColValue + " = excluded." + ColValue + ", " +
			ColInsertedAt + " = excluded." + ColInsertedAt).
		ToSql()
}

func (q Queries) Delete(key string) (string, []any, error) {
	return q.sb.
		Delete(Table).
		Where(squirrel.Eq{ColKey: key}).
		ToSql()
}

// Purge deletes every row inserted strictly before olderThan.
func (q Queries) Purge(olderThan time.Time) (string, []any, error) {
	return q.sb.
		Delete(Table).
		Where(squirrel.Lt{ColInsertedAt: ToMillis(olderThan)}).
		ToSql()
}

func (q Queries) Count() (string, []any, error) {
	return q.sb.
		Select("COUNT(*)").
		From(Table).
		ToSql()
}

// ToMillis stores timestamps as UTC epoch milliseconds.
func ToMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func FromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}
