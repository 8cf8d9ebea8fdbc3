package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/featreq-go/internal/cache"
	"github.com/olegiv/featreq-go/internal/handler"
	"github.com/olegiv/featreq-go/internal/middleware"
	"github.com/olegiv/featreq-go/internal/session"
	"github.com/olegiv/featreq-go/internal/testutil"
)

// newTestServer starts the full API over a temp database with memory-backed
// sessions. Login rate limits are raised out of the way.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db := testutil.TestDB(t)

	c := cache.NewSimpleMemoryCache(session.Lifetime)
	t.Cleanup(func() { _ = c.Close() })

	sm := session.NewWithCache(c, true)
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit: 1000,
		IPBurst:     1000,
	})

	srv := httptest.NewServer(handler.Routes(db, sm, lp))
	t.Cleanup(srv.Close)
	return srv
}

// newClient returns an HTTP client with its own cookie jar, i.e. its own
// session.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type authResponse struct {
	Message string      `json:"message"`
	User    userPayload `json:"user"`
}

// register creates an account through the API and leaves the client's
// session logged in as that user.
func register(t *testing.T, client *http.Client, baseURL, username, password string) userPayload {
	t.Helper()

	resp := doJSON(t, client, http.MethodPost, baseURL+"/api/register", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body authResponse
	decodeBody(t, resp, &body)
	return body.User
}
