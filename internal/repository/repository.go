package repository

import (
	"database/sql"
	"fmt"
)

// requireRowAffected maps a zero-row write to sql.ErrNoRows so services can
// distinguish a missing or foreign record from a database failure.
func requireRowAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
