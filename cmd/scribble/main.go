package main

import (
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oliverisaac/goli"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scribblehq/scribble/static"
	"github.com/scribblehq/scribble/store"
	"github.com/scribblehq/scribble/types"
)

func init() {
	goli.InitLogrus(logrus.DebugLevel)
}

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("error loading godotenv")
	}

	cfg, err := types.ConfigFromEnv()
	if err != nil {
		logrus.Fatal(goerrors.Wrap(err, 1).ErrorStack())
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		logrus.Fatal(goerrors.Wrap(err, 1).ErrorStack())
	}

	e, err := newServer(cfg, db)
	if err != nil {
		logrus.Fatal(goerrors.Wrap(err, 1).ErrorStack())
	}

	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}

func newServer(cfg types.Config, db *gorm.DB) (*echo.Echo, error) {
	if err := db.AutoMigrate(&types.User{}, &types.Note{}); err != nil {
		return nil, errors.Wrap(err, "Failed to migrate")
	}

	users := store.NewUserStore(db)
	notes := store.NewNoteStore(db)

	e := echo.New()
	e.HideBanner = true

	e.Renderer = newTemplate()

	e.StaticFS("/static", static.FS)

	e.Use(middleware.Recover())

	e.Use(middleware.Secure())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}\n",
	}))

	cookieStore := sessions.NewCookieStore(cfg.CookieSecret)
	e.Use(session.Middleware(cookieStore))
	e.Use(UserMiddleware())

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/notes")
	})

	// auth
	e.GET("/auth/sign-up", signUp(cfg))
	e.POST("/auth/sign-up", signUpWithForm(cfg, users))
	e.GET("/auth/sign-in", signIn())
	e.POST("/auth/sign-in", signInWithForm(users))
	e.GET("/auth/sign-out", signOut())
	e.POST("/auth/sign-out", signOut())

	// notes
	e.GET("/notes", RequireUser(listNotes(notes)))
	e.GET("/notes/new", RequireUser(newNoteForm()))
	e.POST("/notes/new", RequireUser(createNote(notes)))
	e.GET("/notes/:id", RequireUser(noteDetail(notes)))
	e.GET("/notes/:id/edit", RequireUser(editNoteForm(notes)))
	e.POST("/notes/:id/edit", RequireUser(updateNote(notes)))
	e.GET("/notes/:id/delete", RequireUser(confirmDeleteNote(notes)))
	e.POST("/notes/:id/delete", RequireUser(deleteNote(notes)))

	// operators
	e.GET("/admin/notes", RequireUser(adminNotes(notes)))

	return e, nil
}
