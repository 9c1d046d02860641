package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ivstoyanov/rolodex/internal/models"
)

// MapPostgresError translates driver errors into the service's sentinel
// errors. The unique-constraint case is the storage-level backstop for
// email uniqueness races the service layer does not close.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	if pgErr, ok := err.(*pgconn.PgError); ok {
		switch pgErr.Code {
		case "23505": // unique_violation
			return models.ErrAlreadyExists
		case "23503": // foreign_key_violation
			return models.ErrInternalServer
		case "23502": // not_null_violation
			return models.ErrInternalServer
		}
	}

	return err
}

// WithTransaction runs fn inside a transaction, committing on success and
// rolling back on error or panic. A failed commit is returned to the caller.
func (db *DB) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, txErr := db.Pool.Begin(ctx)
	if txErr != nil {
		return txErr
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}
