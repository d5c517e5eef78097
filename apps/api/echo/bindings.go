package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/timetable/core"
)

// bindJSON decodes the request body into dest, which may be a slice.
// Query and path params are ignored: use ctx.Bind for filters.
func bindJSON(ctx echo.Context, dest interface{}) error {
	req := ctx.Request()
	if req.ContentLength == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "request body can't be empty")
	}
	if err := json.NewDecoder(req.Body).Decode(dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

// bindRows decodes a JSON array body and validates every row.
// Each row must name the record it replaces through idOf.
func bindRows[T any](ctx echo.Context, validate *validator.Validate, idOf func(T) int) ([]T, error) {
	var rows []T
	if err := bindJSON(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, core.NewValidationError(errEmptyBody)
	}
	for i := range rows {
		if idOf(rows[i]) == 0 {
			return nil, core.NewValidationError(errMissingID, core.FieldError{Field: "id", Error: errMissingID.Error()})
		}
		if err := validate.StructCtx(ctx.Request().Context(), &rows[i]); err != nil {
			return nil, errors.Wrapf(err, "validating row %d", i)
		}
	}
	return rows, nil
}
