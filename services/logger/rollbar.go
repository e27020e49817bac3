package logsvc

import (
	"log"
	"strconv"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/gradetracker/backend/core"
	"github.com/gradetracker/backend/core/user"
)

// RollbarLogger reports entries to Rollbar and mirrors them to a std logger.
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
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

type entry struct {
	msg  string
	args []interface{} // error | map[string]interface{} (extra data)
	usr  *user.User
}

// newEntry pulls the first user.User out of args; it is reported as the Rollbar person.
func newEntry(msg string, args []interface{}) entry {
	e := entry{msg: msg, args: make([]interface{}, 0, len(args))}
	for _, arg := range args {
		if usr, ok := arg.(user.User); ok {
			if e.usr == nil {
				e.usr = &usr
			}
			continue
		}
		e.args = append(e.args, arg)
	}
	return e
}

func (e entry) rollbarArgs() []interface{} {
	if e.usr != nil && e.usr.ID != 0 {
		rollbar.SetPerson(strconv.Itoa(e.usr.ID), e.usr.Username, "")
	} else {
		rollbar.ClearPerson()
	}
	return append([]interface{}{e.msg}, e.args...)
}

func (l RollbarLogger) print(e entry) {
	l.std.Println(e.msg)
	for _, arg := range e.args {
		l.std.Printf("%+v\n", arg)
	}
	if e.usr != nil && e.usr.ID != 0 {
		l.std.Printf("user: %d (%s)\n", e.usr.ID, e.usr.Username)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Debug(e.rollbarArgs()...)
	l.print(e)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Info(e.rollbarArgs()...)
	l.print(e)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Warning(e.rollbarArgs()...)
	l.print(e)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Error(e.rollbarArgs()...)
	l.print(e)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Critical(e.rollbarArgs()...)
	rollbar.Wait()
	l.print(e)
	l.std.Fatal(msg)
}
