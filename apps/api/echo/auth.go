package echoapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/session"
	"github.com/trezcool/timetable/core/user"
)

const (
	contextSessionKey = "session"
	bearerPrefix      = "Bearer "

	// session store values
	sessUserIDKey = "uid"
	sessRoleKey   = "role"
	sessExpiryKey = "exp"
)

var (
	signingMethod  = jwt.SigningMethodHS256
	errInvalidAlgo = errors.New("unexpected signing method")
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Role user.Role `json:"role"`
}

func GetUserClaims(conf *core.Config, usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(conf.Server.TokenExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Role: usr.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(conf *core.Config, usr user.User) (string, error) {
	token := jwt.NewWithClaims(signingMethod, GetUserClaims(conf, usr))
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// authenticator resolves the session of a request from its bearer token, else from its session cookie.
type authenticator struct {
	conf   *core.Config
	usrSvc *user.Service
	store  *sessions.CookieStore
}

func newAuthenticator(conf *core.Config, usrSvc *user.Service) *authenticator {
	store := sessions.NewCookieStore([]byte(conf.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(conf.Server.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   !(conf.Debug || conf.TestMode),
		SameSite: http.SameSiteLaxMode,
	}
	return &authenticator{conf: conf, usrSvc: usrSvc, store: store}
}

// resolve returns the request session, nil for guests. The result is cached in ctx.
func (a *authenticator) resolve(ctx echo.Context) *session.Session {
	if sess, ok := ctx.Get(contextSessionKey).(*session.Session); ok {
		return sess
	}

	var sess *session.Session
	if auth := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, bearerPrefix) {
		sess = a.fromToken(strings.TrimPrefix(auth, bearerPrefix))
	} else {
		sess = a.fromCookie(ctx.Request())
	}
	ctx.Set(contextSessionKey, sess)
	return sess
}

func (a *authenticator) fromToken(raw string) *session.Session {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != signingMethod {
			return nil, errInvalidAlgo
		}
		return []byte(a.conf.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil
	}
	return &session.Session{UserID: uid, Role: claims.Role, Expiry: time.Unix(claims.ExpiresAt, 0).UTC()}
}

// contextUser loads the user behind the request session.
func (a *authenticator) contextUser(ctx echo.Context) (user.User, error) {
	sess := a.resolve(ctx)
	if !sess.Valid(time.Now()) {
		return user.User{}, errUnauthorized
	}
	usr, err := a.usrSvc.GetByID(ctx.Request().Context(), sess.UserID)
	if err != nil {
		if core.IsNotFound(err) {
			return user.User{}, errUnauthorized
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	return usr, nil
}
