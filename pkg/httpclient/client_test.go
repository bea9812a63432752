package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPostJSON(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "holder-scan", r.Header.Get("User-Agent"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"code":0,"msg":"ok"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(HTTPClientConfig{Timeout: time.Second, UserAgent: "holder-scan"}, zap.NewNop())
	defer c.Close()

	var out struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	err := c.PostJSON(context.Background(), srv.URL, map[string]string{"hello": "world"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "world", got["hello"])
	assert.Equal(t, "ok", out.Msg)
}

func TestPostJSONErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewHTTPClient(HTTPClientConfig{Timeout: time.Second}, zap.NewNop())
	defer c.Close()

	err := c.PostJSON(context.Background(), srv.URL, map[string]string{}, nil)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
