package boiledrepos

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/sqlboiler/v4/boil"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"

	"github.com/trezcool/timetable/core"
)

// uniqueViolation is the postgres error code of a broken UNIQUE constraint.
const uniqueViolation = "23505"

type baseRepository struct {
	db core.DB
}

func (repo baseRepository) getExec(svcExec []core.DBExecutor) boil.ContextExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.db
}

// WithTx runs fn in a transaction opened with the database defaults.
// fn's error rolls the transaction back and is returned as is.
func (repo baseRepository) WithTx(ctx context.Context, fn func(exec core.DBExecutor) error) error {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Wrapf(err, "rolling back: %v", rbErr)
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// trapNoRowsErr maps psql "no rows" err to core.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return core.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// trapWriteErr maps unique violations to core.ErrConflict
func trapWriteErr(err error, msg string) error {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return errors.Wrap(core.ErrConflict, pqErr.Detail)
	}
	return errors.Wrap(err, msg)
}

func whereIDIn(ids []int) qm.QueryMod {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return qm.WhereIn("id IN ?", args...)
}
