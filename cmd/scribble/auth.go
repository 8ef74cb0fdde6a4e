package main

import (
	errs "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/scribblehq/scribble/store"
	"github.com/scribblehq/scribble/types"
)

func signUp(cfg types.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := GetSessionUser(c); ok {
			return c.Redirect(http.StatusFound, "/notes")
		}
		if !cfg.AllowSignup {
			return renderNotFound(c)
		}
		return c.Render(http.StatusOK, "sign-up-form", types.NewFormData())
	}
}

func signUpWithForm(cfg types.Config, users *store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := GetSessionUser(c); ok {
			return c.Redirect(http.StatusFound, "/notes")
		}
		if !cfg.AllowSignup {
			return renderNotFound(c)
		}

		username := c.FormValue("username")
		email := c.FormValue("email")
		password := c.FormValue("password")
		confirm := c.FormValue("password_confirm")

		user, err := users.Register(username, email, password, confirm)

		var v store.ValidationError
		if errs.As(err, &v) {
			return c.Render(http.StatusUnprocessableEntity, "sign-up-form", types.FormData{
				Errors: v,
				Values: map[string]string{
					"username": username,
					"email":    email,
				},
			})
		}
		if err != nil {
			logrus.Error(errors.Wrap(err, "Registering user"))
			return c.Render(http.StatusInternalServerError, "sign-up-form", types.FormData{
				Errors: map[string]string{
					"general": "Oops! It appears we have had an error",
				},
				Values: map[string]string{},
			})
		}

		if err := establishSession(c, *user); err != nil {
			return err
		}
		addFlash(c, fmt.Sprintf("Welcome, %s! Your account has been created.", user.Username))

		return c.Redirect(http.StatusFound, "/notes")
	}
}

func signIn() echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := GetSessionUser(c); ok {
			return c.Redirect(http.StatusFound, "/notes")
		}
		return c.Render(http.StatusOK, "sign-in-form", types.SignInData{
			Form:    types.NewFormData(),
			Next:    c.QueryParam("next"),
			Flashes: takeFlashes(c),
		})
	}
}

func signInWithForm(users *store.UserStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := c.FormValue("username")
		password := c.FormValue("password")

		user, err := users.Authenticate(username, password)
		if errs.Is(err, store.ErrBadCredentials) {
			return c.Render(http.StatusUnprocessableEntity, "sign-in-form", types.SignInData{
				Form: types.FormData{
					Errors: map[string]string{
						"general": "Oops! Username or password is incorrect.",
					},
					Values: map[string]string{
						"username": username,
					},
				},
				Next: c.QueryParam("next"),
			})
		}
		if err != nil {
			return errors.Wrap(err, "Authenticating user")
		}

		if err := establishSession(c, *user); err != nil {
			return err
		}

		return c.Redirect(http.StatusFound, safeNext(c.QueryParam("next")))
	}
}

// safeNext only honours same-site destinations so the post-login redirect
// cannot be pointed at another host.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/notes"
}

func signOut() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _ := session.Get(sessionName, c)
		delete(sess.Values, "user")
		sess.AddFlash("You have been logged out.")
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return errors.Wrap(err, "saving session")
		}
		c.Set(UserKey, nil)

		return c.Redirect(http.StatusFound, "/auth/sign-in")
	}
}
