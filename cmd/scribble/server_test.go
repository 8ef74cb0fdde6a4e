package main

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scribblehq/scribble/types"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "scribble.db")), &gorm.Config{})
	require.NoError(t, err)

	cfg := types.Config{
		AllowSignup:  true,
		CookieSecret: []byte("test-cookie-secret"),
	}
	e, err := newServer(cfg, db)
	require.NoError(t, err)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, db
}

// newClient returns an http client with its own cookie jar, i.e. its own
// browser session.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// noFollow stops the client at the first redirect so tests can assert on it.
func noFollow(client *http.Client) *http.Client {
	c := *client
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &c
}

func register(t *testing.T, srv *httptest.Server, client *http.Client, username string) {
	t.Helper()
	resp, err := client.PostForm(srv.URL+"/auth/sign-up", url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"password":         {"password123"},
		"password_confirm": {"password123"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "sign-up should land on the note list")
}

// createNoteVia posts the create form and returns the new note's id, taken
// from the detail page the client is redirected to.
func createNoteVia(t *testing.T, srv *httptest.Server, client *http.Client, title, content string) uint {
	t.Helper()
	resp, err := client.PostForm(srv.URL+"/notes/new", url.Values{
		"title":   {title},
		"content": {content},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	id, err := strconv.ParseUint(path.Base(resp.Request.URL.Path), 10, 64)
	require.NoError(t, err, "expected to land on /notes/<id>, got %s", resp.Request.URL.Path)
	return uint(id)
}

func get(t *testing.T, client *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(t *testing.T, client *http.Client, rawURL string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(rawURL, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}
