package main

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/scribblehq/scribble/types"
)

const UserKey = "session-user"
const sessionName = "session"

// UserMiddleware lifts the JSON-encoded user out of the session cookie onto
// the echo context, where handlers fetch it with GetSessionUser.
func UserMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := session.Get(sessionName, c)
			if raw, ok := sess.Values["user"].([]byte); ok {
				var user types.User
				if err := json.Unmarshal(raw, &user); err != nil {
					logrus.Error(errors.Wrap(err, "unmarshalling session user"))
				} else {
					c.Set(UserKey, user)
				}
			}
			return next(c)
		}
	}
}

func GetSessionUser(c echo.Context) (types.User, bool) {
	u := c.Get(UserKey)
	if u != nil {
		user := u.(types.User)
		logrus.Debugf("Found session user %s", user.Username)
		return user, true
	}
	return types.User{}, false
}

// RequireUser redirects anonymous requests to the sign-in page, remembering
// where they were headed. No store access happens before this check.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := GetSessionUser(c); !ok {
			return c.Redirect(http.StatusFound, "/auth/sign-in?next="+url.QueryEscape(c.Request().URL.Path))
		}
		return next(c)
	}
}

func establishSession(c echo.Context, user types.User) error {
	sess, _ := session.Get(sessionName, c)
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 24 * 365,
		HttpOnly: true,
	}

	// The password hash has no business in a cookie.
	user.Password = ""
	user.Notes = nil
	userBytes, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "marshalling user value")
	}
	sess.Values["user"] = userBytes

	return errors.Wrap(sess.Save(c.Request(), c.Response()), "saving session")
}

func addFlash(c echo.Context, message string) {
	sess, _ := session.Get(sessionName, c)
	sess.AddFlash(message)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		logrus.Error(errors.Wrap(err, "saving flash"))
	}
}

// takeFlashes drains pending flash messages, saving the session so each one
// renders exactly once.
func takeFlashes(c echo.Context) []string {
	sess, _ := session.Get(sessionName, c)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	ret := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			ret = append(ret, s)
		}
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		logrus.Error(errors.Wrap(err, "clearing flashes"))
	}
	return ret
}
