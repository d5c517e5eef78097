// Package logsvc reports to Rollbar and mirrors every entry to a std logger.
package logsvc

import (
	"log"
	"strconv"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/timetable/core"
	"github.com/trezcool/timetable/core/session"
	"github.com/trezcool/timetable/core/user"
)

type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(!conf.Debug && !conf.TestMode && conf.RollbarToken != "")
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// prepare pulls the request identity out of args and sets it as the rollbar person.
// Accepted args: error, map[string]interface{}, user.User, *session.Session.
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var person string
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)

	for _, arg := range args {
		switch v := arg.(type) {
		case user.User:
			if person == "" {
				person = strconv.Itoa(v.ID)
				rollbar.SetPerson(person, v.Username, v.Email)
			}
		case *session.Session:
			if person == "" && v != nil && v.UserID != 0 {
				person = strconv.Itoa(v.UserID)
				rollbar.SetPerson(person, "", "")
			}
		default:
			newArgs = append(newArgs, arg)
		}
	}
	if person == "" {
		rollbar.ClearPerson()
	}
	return newArgs
}

func (l RollbarLogger) log(level, msg string, args []interface{}) {
	rollbar.Log(level, l.prepare(msg, args)...)

	l.std.Printf("[%s] %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.log(rollbar.DEBUG, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.log(rollbar.INFO, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.log(rollbar.WARN, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.log(rollbar.ERR, msg, args) }

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(rollbar.CRIT, msg, args)
	rollbar.Close()
	l.std.Fatal(msg)
}

// Close flushes the pending rollbar items.
func (l RollbarLogger) Close() {
	rollbar.Close()
}
