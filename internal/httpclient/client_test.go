package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersvc/internal/logging"
)

type echo struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Query       string `json:"query"`
	Body        string `json:"body"`
	ContentType string `json:"contentType"`
}

func newEchoServer(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte(`{"error":"short and stout"}`))
			return
		}
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		b, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(echo{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.RawQuery,
			Body:        string(b),
			ContentType: r.Header.Get("Content-Type"),
		})
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, 5*time.Second, logging.Nop())
	require.NoError(t, err)
	return c
}

func TestVerbs(t *testing.T) {
	c := newEchoServer(t)
	ctx := context.Background()

	var got echo
	require.NoError(t, c.GetJSON(ctx, "/items", url.Values{"page": {"2"}}, &got))
	assert.Equal(t, echo{Method: http.MethodGet, Path: "/items", Query: "page=2"}, got)

	got = echo{}
	require.NoError(t, c.PostJSON(ctx, "/items", map[string]string{"a": "b"}, &got))
	assert.Equal(t, http.MethodPost, got.Method)
	assert.JSONEq(t, `{"a":"b"}`, got.Body)
	assert.Equal(t, "application/json", got.ContentType)

	got = echo{}
	require.NoError(t, c.PatchJSON(ctx, "/items/1", map[string]string{"a": "c"}, &got))
	assert.Equal(t, http.MethodPatch, got.Method)
	assert.Equal(t, "/items/1", got.Path)

	require.NoError(t, c.Delete(ctx, "/items/1"))
}

func TestHTTPError(t *testing.T) {
	c := newEchoServer(t)

	err := c.GetJSON(context.Background(), "/fail", nil, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTeapot, httpErr.StatusCode)
	assert.JSONEq(t, `{"error":"short and stout"}`, string(httpErr.Body))
	assert.Contains(t, err.Error(), "http 418")
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("://nope", time.Second, logging.Nop())
	assert.Error(t, err)
}
