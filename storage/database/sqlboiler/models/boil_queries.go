// Package models holds the table rows and query helpers of the postgres schema in fs/migrations,
// written in the shape of sqlboiler generated models.
package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/volatiletech/sqlboiler/v4/boil"
	"github.com/volatiletech/sqlboiler/v4/drivers"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"
	"github.com/volatiletech/strmangle"
)

var dialect = drivers.Dialect{
	LQ:                   0x22,
	RQ:                   0x22,
	UseIndexPlaceholders: true,
	UseLastInsertID:      false,
	UseSchema:            false,
	UseDefaultKeyword:    true,
}

// NewQuery initializes a new Query using the passed in QueryMods
func NewQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)
	return q
}

// Quote quotes an identifier for postgres.
func Quote(ident string) string {
	return strmangle.IdentQuote(dialect.LQ, dialect.RQ, ident)
}

// All binds the rows of table matching mods into slicePtr.
func All(ctx context.Context, exec boil.ContextExecutor, table string, slicePtr interface{}, mods ...qm.QueryMod) error {
	q := NewQuery(append([]qm.QueryMod{qm.From(Quote(table))}, mods...)...)
	if err := q.Bind(ctx, exec, slicePtr); err != nil {
		return errors.Wrapf(err, "models: failed to select all from %s", table)
	}
	return nil
}

// One binds the first row of table matching mods into objPtr. sql.ErrNoRows is returned as is.
func One(ctx context.Context, exec boil.ContextExecutor, table string, objPtr interface{}, mods ...qm.QueryMod) error {
	q := NewQuery(append([]qm.QueryMod{qm.From(Quote(table)), qm.Limit(1)}, mods...)...)
	return q.Bind(ctx, exec, objPtr)
}

// InsertAll inserts every row in a single statement; rows hold their values in cols order.
func InsertAll(ctx context.Context, exec boil.ContextExecutor, table string, cols []string, rows [][]interface{}) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	args := make([]interface{}, 0, len(rows)*len(cols))
	for i, row := range rows {
		if len(row) != len(cols) {
			return 0, errors.Errorf("models: row %d of %s has %d values, want %d", i, table, len(row), len(cols))
		}
		args = append(args, row...)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		Quote(table),
		strings.Join(strmangle.IdentQuoteSlice(dialect.LQ, dialect.RQ, cols), ","),
		strmangle.Placeholders(dialect.UseIndexPlaceholders, len(args), 1, len(cols)),
	)
	if boil.IsDebug(ctx) {
		writer := boil.DebugWriterFrom(ctx)
		fmt.Fprintln(writer, query)
		fmt.Fprintln(writer, args...)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "models: unable to insert into %s", table)
	}
	rowsAff, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrapf(err, "models: failed to get rows affected by insert for %s", table)
	}
	return rowsAff, nil
}

// UpdateAll sets cols on the rows of table matching mods.
func UpdateAll(ctx context.Context, exec boil.ContextExecutor, table string, cols M, mods ...qm.QueryMod) (int64, error) {
	q := NewQuery(append([]qm.QueryMod{qm.From(Quote(table))}, mods...)...)
	queries.SetUpdate(q, cols)

	result, err := q.ExecContext(ctx, exec)
	if err != nil {
		return 0, errors.Wrapf(err, "models: unable to update all for %s", table)
	}
	rowsAff, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrapf(err, "models: unable to retrieve rows affected for %s", table)
	}
	return rowsAff, nil
}

// DeleteAll deletes the rows of table matching mods.
func DeleteAll(ctx context.Context, exec boil.ContextExecutor, table string, mods ...qm.QueryMod) (int64, error) {
	q := NewQuery(append([]qm.QueryMod{qm.From(Quote(table))}, mods...)...)
	queries.SetDelete(q)

	result, err := q.ExecContext(ctx, exec)
	if err != nil {
		return 0, errors.Wrapf(err, "models: unable to delete all from %s", table)
	}
	rowsAff, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrapf(err, "models: failed to get rows affected by delete for %s", table)
	}
	return rowsAff, nil
}

// Exists reports whether a row of table matches mods.
func Exists(ctx context.Context, exec boil.ContextExecutor, table string, mods ...qm.QueryMod) (bool, error) {
	var count int64
	q := NewQuery(append([]qm.QueryMod{qm.From(Quote(table)), qm.Select("COUNT(*)"), qm.Limit(1)}, mods...)...)
	if err := q.QueryRowContext(ctx, exec).Scan(&count); err != nil {
		return false, errors.Wrapf(err, "models: failed to check if %s exists", table)
	}
	return count > 0, nil
}

// M is a column => value map, used by UpdateAll.
type M map[string]interface{}

// Columns returns the keys of m in a stable order.
func (m M) Columns() []string {
	cols := make([]string, 0, len(m))
	for c := range m {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}
