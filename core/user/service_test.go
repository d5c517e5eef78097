package user_test

import (
	"context"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/user"
	emailsvc "github.com/trezcool/timetable/services/email"
	logsvc "github.com/trezcool/timetable/services/logger"
	inmemdb "github.com/trezcool/timetable/storage/database/inmem"
	testutil "github.com/trezcool/timetable/tests"
)

var tokenRegex = regexp.MustCompile(`token=(\S+)`)

func newService(t *testing.T) (*user.Service, user.Repository) {
	t.Helper()
	conf := testutil.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	repo := inmemdb.NewUserRepository(inmemdb.NewDB())
	return user.NewService(repo, emailsvc.NewConsoleServiceMock(conf, logger), conf), repo
}

func TestNewService_missingDeps(t *testing.T) {
	assert.Panics(t, func() { user.NewService(nil, nil, nil) })
}

func TestService_Create(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{
		Name:     "Somchai",
		Username: "somchai",
		Email:    "somchai@school.test",
		Role:     "teacher",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	assert.NotZero(t, usr.ID)
	assert.Equal(t, user.RoleTeacher, usr.Role)
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("s3cretpass"))
	assert.False(t, usr.CreatedAt.IsZero())

	got, err := svc.GetByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr.Username, got.Username)

	// unknown role strings are stored as RoleUnknown
	guest, err := svc.Create(ctx, user.NewUser{Name: "Guest", Username: "guest", Role: "janitor", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, user.RoleUnknown, guest.Role)
}

func TestService_Authenticate(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, repo, "Admin", "admin", "admin@school.test", "adminpass", user.RoleAdmin, true)
	testutil.CreateUser(t, repo, "Former", "former", "former@school.test", "formerpass", user.RoleTeacher, false)

	tests := []struct {
		name    string
		uname   string
		pwd     string
		wantErr error
	}{
		{name: "unknown user", uname: "nobody", pwd: "adminpass", wantErr: user.ErrAuthenticationFailed},
		{name: "wrong password", uname: "admin", pwd: "nope", wantErr: user.ErrAuthenticationFailed},
		{name: "deactivated", uname: "former", pwd: "formerpass", wantErr: user.ErrAccountDeactivated},
		{name: "by username", uname: "admin", pwd: "adminpass"},
		{name: "by email, any case", uname: " Admin@School.test ", pwd: "adminpass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Authenticate(ctx, tt.uname, tt.pwd)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, admin.ID, usr.ID)
			assert.False(t, usr.LastLogin.IsZero())
		})
	}
}

func TestService_SetPassword(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	testutil.CreateUser(t, repo, "Teacher", "teacher", "", "oldpassword", user.RoleTeacher, true)

	_, err := svc.SetPassword(ctx, "nobody", "newpassword")
	assert.True(t, core.IsNotFound(err))

	usr, err := svc.SetPassword(ctx, "teacher", "newpassword")
	require.NoError(t, err)
	assert.NoError(t, usr.CheckPassword("newpassword"))

	_, err = svc.Authenticate(ctx, "teacher", "oldpassword")
	assert.Equal(t, user.ErrAuthenticationFailed, err)
}

func TestService_PasswordReset(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "Malee", "malee", "malee@school.test", "oldpassword", user.RoleTeacher, true)
	testutil.CreateUser(t, repo, "Former", "former", "former@school.test", "formerpass", user.RoleTeacher, false)

	assert.True(t, core.IsNotFound(svc.RequestPasswordReset(ctx, "ghost@school.test")))
	assert.True(t, core.IsNotFound(svc.RequestPasswordReset(ctx, "former@school.test")))

	require.NoError(t, svc.RequestPasswordReset(ctx, "MALEE@school.test"))
	msg, ok := emailsvc.LastSentMessage()
	require.True(t, ok)
	require.Len(t, msg.To, 1)
	assert.Equal(t, "malee@school.test", msg.To[0].Address)
	assert.Contains(t, msg.TextContent, "uid="+user.EncodeUID(usr))

	match := tokenRegex.FindStringSubmatch(msg.TextContent)
	require.Len(t, match, 2)
	token := match[1]

	tests := []struct {
		name    string
		data    user.ResetUserPassword
		wantErr bool
	}{
		{name: "bad uid", data: user.ResetUserPassword{UID: "???", Token: token, Password: "newpassword"}, wantErr: true},
		{name: "unknown uid", data: user.ResetUserPassword{UID: user.EncodeUID(user.User{ID: 999}), Token: token, Password: "newpassword"}, wantErr: true},
		{name: "bad token", data: user.ResetUserPassword{UID: user.EncodeUID(usr), Token: "HE4TS-sigsig-sig", Password: "newpassword"}, wantErr: true},
		{name: "valid", data: user.ResetUserPassword{UID: user.EncodeUID(usr), Token: token, Password: "newpassword"}},
		// the password changed, the token is spent
		{name: "reused token", data: user.ResetUserPassword{UID: user.EncodeUID(usr), Token: token, Password: "otherpassword"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ResetPassword(ctx, tt.data)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, user.ErrInvalidResetLink, vErr.Err)
		})
	}

	_, err := svc.Authenticate(ctx, "malee", "newpassword")
	assert.NoError(t, err)
}

func TestNewUser_Validate(t *testing.T) {
	svc, repo := newService(t)
	testutil.CreateUser(t, repo, "Taken", "taken", "taken@school.test", "", user.RoleStudent, true)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	valid := func() user.NewUser {
		return user.NewUser{
			Name:            "  New Teacher ",
			Username:        "NewTeacher",
			Email:           "New@School.test",
			Role:            "Teacher",
			Password:        "kh0ngsawan",
			PasswordConfirm: "kh0ngsawan",
		}
	}

	nu := valid()
	require.NoError(t, nu.Validate(validate, svc))
	assert.Equal(t, "New Teacher", nu.Name)
	assert.Equal(t, "newteacher", nu.Username)
	assert.Equal(t, "teacher", nu.Role)

	tests := []struct {
		name      string
		mutate    func(nu *user.NewUser)
		wantField string
	}{
		{name: "username taken", mutate: func(nu *user.NewUser) { nu.Username = "Taken" }, wantField: "username"},
		{name: "email taken", mutate: func(nu *user.NewUser) { nu.Email = "taken@school.test" }, wantField: "email"},
		{name: "unknown role", mutate: func(nu *user.NewUser) { nu.Role = "janitor" }, wantField: "role"},
		{name: "short password", mutate: func(nu *user.NewUser) { nu.Password, nu.PasswordConfirm = "ab1", "ab1" }, wantField: "password"},
		{name: "numeric password", mutate: func(nu *user.NewUser) { nu.Password, nu.PasswordConfirm = "12345678", "12345678" }, wantField: "password"},
		{name: "password like username", mutate: func(nu *user.NewUser) { nu.Password, nu.PasswordConfirm = "newteacher1", "newteacher1" }, wantField: "password"},
		{name: "confirm mismatch", mutate: func(nu *user.NewUser) { nu.PasswordConfirm = "other0pass" }, wantField: "password_confirm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := valid()
			tt.mutate(&nu)
			err := nu.Validate(validate, svc)
			require.Error(t, err)

			switch vErr := errors.Cause(err).(type) {
			case validator.ValidationErrors:
				fields := make([]string, 0, len(vErr))
				for _, fe := range vErr {
					fields = append(fields, fe.Field())
				}
				assert.Contains(t, fields, tt.wantField)
			case *core.ValidationError:
				require.Len(t, vErr.Fields, 1)
				assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
			default:
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
		})
	}
}
