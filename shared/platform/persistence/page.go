package persistence

import (
	"context"
	"database/sql"

	"github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
)

// RowScanner lo cumplen *sql.Row y *sql.Rows.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

// QueryPage ejecuta el listado paginado y su COUNT con el mismo WHERE.
func QueryPage[T any](
	ctx context.Context,
	db *sql.DB,
	d Dialect,
	table, selectCols string,
	c domain.Criteria,
	opts query.Options,
	cols Columns,
	scan func(RowScanner) (T, error),
) ([]T, int, error) {
	where, args := BuildWhere(c, cols, d)
	listSQL, countSQL := SelectPage(d, table, selectCols, where, opts, cols)

	var total int
	if err := db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, TranslateError(err)
	}

	listArgs := append(append([]interface{}{}, args...), opts.Limit, opts.Skip)
	rows, err := db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, TranslateError(err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, TranslateError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, TranslateError(err)
	}
	return items, total, nil
}

// Exists devuelve si la query (un SELECT 1 ...) encuentra alguna fila.
func Exists(ctx context.Context, db *sql.DB, d Dialect, q string, args ...interface{}) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, d.Rebind(q), args...).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, TranslateError(err)
	}
	return true, nil
}
