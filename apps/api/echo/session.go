package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/timetable/core/session"
	"github.com/trezcool/timetable/core/user"
)

// Browser sessions live in a signed gorilla cookie holding the user ID, role and expiry.

func (a *authenticator) fromCookie(req *http.Request) *session.Session {
	cookie, err := a.store.Get(req, a.conf.Server.SessionName)
	if err != nil || cookie.IsNew {
		return nil
	}
	uid, _ := cookie.Values[sessUserIDKey].(int)
	role, _ := cookie.Values[sessRoleKey].(string)
	exp, _ := cookie.Values[sessExpiryKey].(int64)
	if uid == 0 {
		return nil
	}
	return &session.Session{UserID: uid, Role: user.NormalizeRole(role), Expiry: time.Unix(exp, 0).UTC()}
}

// login opens a cookie session for usr.
func (a *authenticator) login(ctx echo.Context, usr user.User) (*session.Session, error) {
	sess := session.New(usr, a.conf.Server.SessionMaxAge)

	cookie, _ := a.store.Get(ctx.Request(), a.conf.Server.SessionName) // a broken cookie is replaced
	cookie.Values[sessUserIDKey] = sess.UserID
	cookie.Values[sessRoleKey] = sess.Role.String()
	cookie.Values[sessExpiryKey] = sess.Expiry.Unix()
	if err := cookie.Save(ctx.Request(), ctx.Response()); err != nil {
		return nil, errors.Wrap(err, "saving session cookie")
	}
	ctx.Set(contextSessionKey, sess)
	return sess, nil
}

// logout expires the session cookie.
func (a *authenticator) logout(ctx echo.Context) error {
	cookie, _ := a.store.Get(ctx.Request(), a.conf.Server.SessionName)
	cookie.Values = make(map[interface{}]interface{})
	cookie.Options.MaxAge = -1
	if err := cookie.Save(ctx.Request(), ctx.Response()); err != nil {
		return errors.Wrap(err, "clearing session cookie")
	}
	ctx.Set(contextSessionKey, (*session.Session)(nil))
	return nil
}
