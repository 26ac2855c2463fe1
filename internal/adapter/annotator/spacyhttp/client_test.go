package spacyhttp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/deutschkurs/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Annotate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/annotate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req annotateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Das Haus.", req.Text)
		assert.Equal(t, DefaultModel, req.Model)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tokens":[
			{"text":"Das","pos":"DET"},
			{"text":"Haus","pos":"NOUN"},
			{"text":".","pos":"PUNCT"},
			{"text":"\n","pos":"SPACE"},
			{"text":"??","pos":"WEIRD"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "", time.Second, newTestLogger())
	got, err := c.Annotate(context.Background(), "Das Haus.")
	require.NoError(t, err)

	assert.Equal(t, []domain.Token{
		{Text: "Das", Category: domain.CategoryDeterminer},
		{Text: "Haus", Category: domain.CategoryNoun},
		{Text: ".", Category: domain.CategoryPunctuation},
		{Text: "\n", Category: domain.CategorySpace},
		{Text: "??", Category: domain.CategoryOther},
	}, got)
}

func TestClient_Annotate_CustomModel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req annotateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "de_core_news_lg", req.Model)
		w.Write([]byte(`{"tokens":[]}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "de_core_news_lg", time.Second, newTestLogger()).Annotate(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_Annotate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusServiceUnavailable)
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"tokens":`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, "", time.Second, newTestLogger()).Annotate(context.Background(), "Haus")
			assert.Error(t, err)
		})
	}
}
