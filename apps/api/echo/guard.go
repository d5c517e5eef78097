package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/timetable/core/session"
)

const signInPath = "/signin"

// apiGuard protects an API group: guests get a 401, non-admins on admin-only routes a 403.
func apiGuard(auth *authenticator, p session.Policy) echo.MiddlewareFunc {
	guard := session.NewGuard(p)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			switch guard.Check(auth.resolve(ctx)) {
			case session.Allow:
				return next(ctx)
			case session.Forbid:
				return errHttpForbidden
			default:
				return errUnauthorized
			}
		}
	}
}

// pageGuard protects a page group: guests are sent to the sign-in page, non-admins on admin-only pages get a 403.
func pageGuard(auth *authenticator, p session.Policy) echo.MiddlewareFunc {
	guard := session.NewGuard(p)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			switch guard.Check(auth.resolve(ctx)) {
			case session.Allow:
				return next(ctx)
			case session.Forbid:
				return ctx.String(http.StatusForbidden, "forbidden")
			default:
				return ctx.Redirect(http.StatusFound, signInPath)
			}
		}
	}
}

func (a *authenticator) protected() echo.MiddlewareFunc { return apiGuard(a, session.Protected) }
func (a *authenticator) adminOnly() echo.MiddlewareFunc { return apiGuard(a, session.AdminOnly) }
