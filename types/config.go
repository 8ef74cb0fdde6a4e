package types

import (
	errs "errors"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/oliverisaac/goli"
	"github.com/pkg/errors"
)

type Config struct {
	AllowSignup  bool
	CookieSecret []byte
	DBPath       string
	ListenAddr   string
}

func ConfigFromEnv() (Config, error) {
	ret := Config{}
	var retErr error
	var err error

	ret.AllowSignup, err = strconv.ParseBool(goli.DefaultEnv("SCRIBBLE_ALLOW_SIGNUP", "true"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing SCRIBBLE_ALLOW_SIGNUP"))
	}

	ret.ListenAddr = goli.DefaultEnv("SCRIBBLE_LISTEN_ADDR", ":8080")

	cookieSecret, ok := os.LookupEnv("SCRIBBLE_COOKIE_STORE_SECRET")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env SCRIBBLE_COOKIE_STORE_SECRET"))
	} else {
		ret.CookieSecret = []byte(cookieSecret)
	}

	ret.DBPath, ok = os.LookupEnv("SCRIBBLE_DB_PATH")
	if !ok {
		retErr = errs.Join(retErr, fmt.Errorf("You must define env SCRIBBLE_DB_PATH"))
	} else if _, err := os.Stat(path.Dir(ret.DBPath)); err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "Directory for SCRIBBLE_DB_PATH must exist"))
	}

	return ret, retErr
}
