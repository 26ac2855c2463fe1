package dictd

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/deutschkurs/internal/provider"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(addr string) *Provider {
	return NewProvider(Config{Addr: addr, DialTimeout: time.Second}, newTestLogger())
}

func TestProvider_Define_Found(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, map[string]string{
		"Haus": "Haus /haʊs/ <n>\nhouse\n",
	}, nil)
	p := newTestProvider(srv.Addr())

	def, err := p.Define(context.Background(), "Haus")
	require.NoError(t, err)
	require.NotNil(t, def)

	assert.Equal(t, "Haus", def.Word)
	assert.Equal(t, "das", def.Article)
	assert.Equal(t, provider.GenderNeuter, def.Gender)
	assert.Equal(t, "house", def.Text)
	assert.Equal(t, DefaultDatabase, def.Dictionary)
	assert.Contains(t, srv.Commands(), `DEFINE fd-deu-eng "Haus"`)
}

func TestProvider_Define_Umlaut(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, map[string]string{
		"Öl": "Öl /øːl/ <n>\noil\n",
	}, nil)
	p := newTestProvider(srv.Addr())

	def, err := p.Define(context.Background(), "Öl")
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, "Öl", def.Word)
	assert.Equal(t, "das", def.Article)
}

func TestProvider_Define_NotFound(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, map[string]string{}, nil)
	p := newTestProvider(srv.Addr())

	def, err := p.Define(context.Background(), "Xyzzy")
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestProvider_Define_Malformed(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, map[string]string{
		"Haus": "Haus <n>\n",
	}, nil)
	p := newTestProvider(srv.Addr())

	_, err := p.Define(context.Background(), "Haus")
	assert.ErrorIs(t, err, provider.ErrMalformed)
}

func TestProvider_Define_Unreachable(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	p := newTestProvider(addr)
	_, err = p.Define(context.Background(), "Haus")
	assert.Error(t, err)
}

func TestProvider_Define_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, map[string]string{"Haus": "Haus <n>\nhouse"}, nil)
	p := newTestProvider(srv.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Define(ctx, "Haus")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProvider_Search(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, nil, map[string][]string{
		"Hauss": {"Haus", "Hause", "Haus"},
	})
	p := newTestProvider(srv.Addr())

	words, err := p.Search(context.Background(), "Hauss")
	require.NoError(t, err)
	assert.Equal(t, []string{"Haus", "Hause"}, words)
	assert.Contains(t, srv.Commands(), `MATCH fd-deu-eng lev "Hauss"`)
}

func TestProvider_Search_NoMatch(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, nil, nil)
	p := newTestProvider(srv.Addr())

	words, err := p.Search(context.Background(), "Xyzzy")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestProvider_Check(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t, nil, nil)

	names, err := newTestProvider(srv.Addr()).Check(context.Background())
	require.NoError(t, err)
	assert.Contains(t, names, DefaultDatabase)

	other := NewProvider(Config{Addr: srv.Addr(), Database: "fd-deu-fra"}, newTestLogger())
	names, err = other.Check(context.Background())
	assert.Error(t, err)
	assert.NotEmpty(t, names)
}

func TestNewProvider_Defaults(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{}, newTestLogger())
	assert.Equal(t, DefaultAddr, p.addr)
	assert.Equal(t, DefaultDatabase, p.Database())
	assert.Equal(t, DefaultStrategy, p.strategy)
	assert.Equal(t, 5*time.Second, p.dialTimeout)
}
