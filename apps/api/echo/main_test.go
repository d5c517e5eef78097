package echoapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"

	. "github.com/trezcool/timetable/apps/api/echo"
	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/school"
	"github.com/trezcool/timetable/core/user"
	emailsvc "github.com/trezcool/timetable/services/email"
	logsvc "github.com/trezcool/timetable/services/logger"
	inmemdb "github.com/trezcool/timetable/storage/database/inmem"
	testutil "github.com/trezcool/timetable/tests"
)

const indexHTML = "<!doctype html><title>Timetable</title>"

var (
	staticDir string

	errUnauthorized = httpErr{Error: "user not authenticated"}
	errForbidden    = httpErr{Error: "permission denied"}
)

func TestMain(m *testing.M) {
	var err error
	staticDir, err = os.MkdirTemp("", "timetable-web")
	if err != nil {
		log.Fatalf("os.MkdirTemp(): %v", err)
	}
	if err = os.WriteFile(filepath.Join(staticDir, "index.html"), []byte(indexHTML), 0o644); err != nil {
		log.Fatalf("os.WriteFile(): %v", err)
	}

	code := m.Run()

	_ = os.RemoveAll(staticDir)
	os.Exit(code)
}

// testApp is a server backed by a fresh in-memory database.
type testApp struct {
	Server
	conf       *core.Config
	usrRepo    user.Repository
	schoolRepo school.Repository
}

func newTestApp(t *testing.T, schoolRepo ...school.Repository) *testApp {
	t.Helper()

	conf := testutil.NewConfig()
	conf.Server.StaticDir = staticDir
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)

	db := inmemdb.NewDB()
	usrRepo := inmemdb.NewUserRepository(db)
	var repo school.Repository = inmemdb.NewSchoolRepository(db)
	if len(schoolRepo) > 0 {
		repo = schoolRepo[0]
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	school.InitValidators(validate, translator)

	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		UserSvc:    user.NewService(usrRepo, emailsvc.NewConsoleServiceMock(conf, logger), conf),
		SchoolSvc:  school.NewService(repo),
		Validate:   validate,
		Translator: translator,
	})
	return &testApp{Server: srv, conf: conf, usrRepo: usrRepo, schoolRepo: repo}
}

func (app *testApp) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(app.conf, usr)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

// users creates one active user per role and returns their tokens.
func (app *testApp) users(t *testing.T) (adminToken, teacherToken, studentToken string) {
	t.Helper()
	admin := testutil.CreateUser(t, app.usrRepo, "Admin", "admin", "admin@school.test", "adminpass", user.RoleAdmin, true)
	teacher := testutil.CreateUser(t, app.usrRepo, "Teacher", "teacher", "teacher@school.test", "teacherpass", user.RoleTeacher, true)
	student := testutil.CreateUser(t, app.usrRepo, "Student", "student", "student@school.test", "studentpass", user.RoleStudent, true)
	return app.token(t, admin), app.token(t, teacher), app.token(t, student)
}

func (app *testApp) do(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	if method == "" {
		method = http.MethodGet
	}
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app *testApp, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(t, tt))
		})
	}
}
