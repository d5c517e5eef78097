package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/school"
	inmemdb "github.com/trezcool/timetable/storage/database/inmem"
)

// spyRepository counts the teacher queries and writes reaching the store.
type spyRepository struct {
	school.Repository
	calls int
}

func (s *spyRepository) QueryTeachers(ctx context.Context, filter school.TeacherFilter, exec ...core.DBExecutor) ([]school.Teacher, error) {
	s.calls++
	return s.Repository.QueryTeachers(ctx, filter, exec...)
}

func (s *spyRepository) CreateTeachers(ctx context.Context, teachers []school.Teacher, exec ...core.DBExecutor) (int, error) {
	s.calls++
	return s.Repository.CreateTeachers(ctx, teachers, exec...)
}

func Test_pageGuard(t *testing.T) {
	app := newTestApp(t)
	adminToken, teacherToken, studentToken := app.users(t)

	tests := []struct {
		name         string
		path         string
		token        string
		wantCode     int
		wantLocation string
		wantBody     string
	}{
		{name: "guest on admin-only page", path: "/management/teacher", wantCode: http.StatusFound, wantLocation: "/signin"},
		{name: "guest on schedule", path: "/schedule", wantCode: http.StatusFound, wantLocation: "/signin"},
		{name: "guest on protected page", path: "/dashboard", wantCode: http.StatusFound, wantLocation: "/signin"},
		{name: "teacher on admin-only page", path: "/management/teacher", token: teacherToken, wantCode: http.StatusForbidden, wantBody: "forbidden"},
		{name: "student on schedule", path: "/schedule/2566/1", token: studentToken, wantCode: http.StatusForbidden, wantBody: "forbidden"},
		{name: "student on protected page", path: "/dashboard/", token: studentToken, wantCode: http.StatusOK, wantBody: indexHTML},
		{name: "admin on admin-only page", path: "/management/teacher", token: adminToken, wantCode: http.StatusOK, wantBody: indexHTML},
		{name: "admin on protected page", path: "/dashboard/2566/1", token: adminToken, wantCode: http.StatusOK, wantBody: indexHTML},
		{name: "guest on sign-in page", path: "/signin", wantCode: http.StatusOK, wantBody: indexHTML},
		{name: "invalid token is a guest", path: "/dashboard", token: "not.a.jwt", wantCode: http.StatusFound, wantLocation: "/signin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func Test_apiGuard_noDataAccess(t *testing.T) {
	spy := &spyRepository{Repository: inmemdb.NewSchoolRepository(inmemdb.NewDB())}
	app := newTestApp(t, spy)
	_, teacherToken, _ := app.users(t)
	body := marchallList(t, school.Teacher{Firstname: "Somsak", Lastname: "Dee"})

	runHTTPTests(t, app, []httpTest{
		{name: "guest read", path: "/api/teacher", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{
			name: "guest write", method: http.MethodPost, path: "/api/teacher", body: body,
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized),
		},
		{
			name: "teacher write", method: http.MethodPost, path: "/api/teacher", body: body, token: teacherToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
	})
	assert.Zero(t, spy.calls)

	// allowed requests do reach the store
	runHTTPTests(t, app, []httpTest{
		{name: "teacher read", path: "/api/teacher", token: teacherToken, wantData: marchallList(t)},
	})
	assert.Equal(t, 1, spy.calls)
}
