package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/school"
)

type (
	bulkWriter[T any] func(ctx context.Context, rows []T, exec ...core.DBExecutor) (int, error)
	bulkDeleter       func(ctx context.Context, ids []int, exec ...core.DBExecutor) (int, error)
)

// list renders rows, never as null.
func list[T any](ctx echo.Context, rows []T, err error, what string) error {
	if err != nil {
		return errors.Wrapf(err, "querying %s", what)
	}
	if rows == nil {
		rows = []T{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

// createRows hands the decoded rows to write as they are: the store's constraints are the only
// row checks, and a single bad row fails the whole batch.
func createRows[T any](write bulkWriter[T], what string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var rows []T
		if err := bindJSON(ctx, &rows); err != nil {
			return err
		}
		cnt, err := write(ctx.Request().Context(), rows)
		if err != nil {
			return errors.Wrapf(err, "creating %s", what)
		}
		return ctx.JSON(http.StatusCreated, school.Count{Count: cnt})
	}
}

func updateRows[T any](validate *validator.Validate, write bulkWriter[T], idOf func(T) int, what string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		rows, err := bindRows(ctx, validate, idOf)
		if err != nil {
			return err
		}
		cnt, err := write(ctx.Request().Context(), rows)
		if err != nil {
			return errors.Wrapf(err, "updating %s", what)
		}
		return ctx.JSON(http.StatusOK, school.Count{Count: cnt})
	}
}

func deleteRows(validate *validator.Validate, del bulkDeleter, what string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var data school.DeleteRequest
		if err := bindJSON(ctx, &data); err != nil {
			return err
		}
		if err := validate.Struct(data); err != nil {
			return err
		}
		cnt, err := del(ctx.Request().Context(), data.IDs)
		if err != nil {
			return errors.Wrapf(err, "deleting %s", what)
		}
		return ctx.JSON(http.StatusOK, school.Count{Count: cnt})
	}
}

// bindQuery binds the query string into a filter struct. Only used on requests without a body.
func bindQuery(ctx echo.Context, filter interface{}) error {
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding query params")
	}
	return nil
}

// bindTerm binds and validates the AcademicYear & Semester query params.
func bindTerm(ctx echo.Context, validate *validator.Validate, term *school.Term) error {
	if err := bindQuery(ctx, term); err != nil {
		return err
	}
	return validate.Struct(term)
}
