package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/timetable/apps/api/echo"
)

func Test_telemetryApi_loadingStuck(t *testing.T) {
	app := newTestApp(t)
	adminToken, _, _ := app.users(t)
	invalid := marchallObj(t, TelemetryResponse{Success: false, Error: "Invalid payload"})

	runHTTPTests(t, app, []httpTest{
		{
			name: "valid", method: http.MethodPost, path: "/api/telemetry/loading-stuck",
			body:     []byte(`{"event":"loading_stuck_banner_shown","occurredAt":"2024-01-01T00:00:00Z"}`),
			wantData: []byte(`{"success":true}`),
		},
		{
			name: "valid with location, signed in", method: http.MethodPost, path: "/api/telemetry/loading-stuck", token: adminToken,
			body: marchallObj(t, LoadingStuckEvent{
				Event:      "loading_stuck_banner_shown",
				OccurredAt: "2024-01-01T00:00:00Z",
				Path:       "/schedule/2566/1",
				Search:     "?tab=teacher",
			}),
			wantData: []byte(`{"success":true}`),
		},
		{
			name: "missing occurredAt", method: http.MethodPost, path: "/api/telemetry/loading-stuck",
			body:     []byte(`{"event":"loading_stuck_banner_shown"}`),
			wantCode: http.StatusBadRequest, wantData: invalid,
		},
		{
			name: "missing event", method: http.MethodPost, path: "/api/telemetry/loading-stuck",
			body:     []byte(`{"occurredAt":"2024-01-01T00:00:00Z"}`),
			wantCode: http.StatusBadRequest, wantData: invalid,
		},
		{
			name: "malformed json", method: http.MethodPost, path: "/api/telemetry/loading-stuck",
			body:     []byte(`{"event":`),
			wantCode: http.StatusBadRequest, wantData: invalid,
		},
		{
			name: "empty body", method: http.MethodPost, path: "/api/telemetry/loading-stuck",
			wantCode: http.StatusBadRequest, wantData: invalid,
		},
	})

	rec := app.do(t, httpTest{path: "/metrics"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "timetable_telemetry_loading_stuck_total")
	assert.Contains(t, rec.Body.String(), `timetable_http_requests_total{code="400",method="POST",route="/api/telemetry/loading-stuck"}`)
}

func Test_home(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, httpTest{path: "/api"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to the Timetable API!", rec.Body.String())

	rec = app.do(t, httpTest{path: "/api/"})
	assert.Equal(t, http.StatusOK, rec.Code)
}
