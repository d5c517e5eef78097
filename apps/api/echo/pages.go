package echoapi

import (
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/timetable/core/session"
)

// registerPages serves the single-page frontend built into staticDir.
// Page groups are guarded before index.html is sent; assets and public pages are served as is.
func registerPages(app *echo.Echo, auth *authenticator, staticDir string) {
	index := func(ctx echo.Context) error {
		return ctx.File(filepath.Join(staticDir, "index.html"))
	}

	app.Static("/", staticDir)
	app.GET(signInPath, index)

	pages := []struct {
		prefix string
		policy session.Policy
	}{
		{prefix: "/dashboard", policy: session.Protected},
		{prefix: "/management", policy: session.AdminOnly},
		{prefix: "/schedule", policy: session.AdminOnly},
	}
	for _, p := range pages {
		g := app.Group(p.prefix, pageGuard(auth, p.policy))
		g.GET("", index)
		g.GET("/*", index)
	}
}
