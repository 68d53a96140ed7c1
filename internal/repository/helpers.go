package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// exists checks for a row by primary key. table is always a constant from this package.
func exists(ctx context.Context, db *sqlx.DB, table string, id int64) (bool, error) {
	query := db.Rebind(fmt.Sprintf("SELECT 1 FROM %s WHERE id = ? LIMIT 1", table))
	var found int
	if err := db.GetContext(ctx, &found, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check %s: %w", table, err)
	}
	return true, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
