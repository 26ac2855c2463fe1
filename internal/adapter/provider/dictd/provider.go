// Package dictd looks words up on a DICT protocol (RFC 2229) server such as
// dictd serving the FreeDict German-English database.
package dictd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/textproto"
	"time"

	"golang.org/x/net/dict"

	"github.com/heartmarshall/deutschkurs/internal/provider"
)

// Defaults of a local dictd with the FreeDict package installed.
const (
	DefaultAddr     = "localhost:2628"
	DefaultDatabase = "fd-deu-eng"
	DefaultStrategy = "lev"
)

// codeNoMatch is the DICT status for "no match" on DEFINE and MATCH.
const codeNoMatch = 552

// Config configures a Provider.
type Config struct {
	Addr     string
	Database string
	// Strategy is the MATCH strategy used by Search, e.g. "lev" or "prefix".
	Strategy    string
	DialTimeout time.Duration
}

// Provider fetches definitions from a DICT server. Every call uses its own
// connection, so a Provider is safe for concurrent use.
type Provider struct {
	addr        string
	database    string
	strategy    string
	dialTimeout time.Duration
	log         *slog.Logger
}

// NewProvider creates a Provider. Empty config fields fall back to the
// package defaults.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	p := &Provider{
		addr:        cfg.Addr,
		database:    cfg.Database,
		strategy:    cfg.Strategy,
		dialTimeout: cfg.DialTimeout,
		log:         logger.With("adapter", "dictd"),
	}
	if p.addr == "" {
		p.addr = DefaultAddr
	}
	if p.database == "" {
		p.database = DefaultDatabase
	}
	if p.strategy == "" {
		p.strategy = DefaultStrategy
	}
	if p.dialTimeout <= 0 {
		p.dialTimeout = 5 * time.Second
	}
	return p
}

// Database returns the name of the queried dictionary database.
func (p *Provider) Database() string { return p.database }

// Define looks word up exactly. Returns nil, nil if the server has no
// definition. Entries that cannot be parsed yield provider.ErrMalformed.
func (p *Provider) Define(ctx context.Context, word string) (*provider.Definition, error) {
	p.log.DebugContext(ctx, "dictd define", slog.String("word", word), slog.String("database", p.database))

	var defs []*dict.Defn
	err := p.withClient(ctx, func(c *dict.Client) error {
		var err error
		defs, err = c.Define(p.database, word)
		return err
	})
	if isNoMatch(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dictd: define %q: %w", word, err)
	}
	if len(defs) == 0 {
		return nil, nil
	}

	var parseErr error
	for _, d := range defs {
		def, err := ParseEntry(d.Text)
		if err != nil {
			parseErr = err
			continue
		}
		if def.Word == "" {
			def.Word = d.Word
		}
		def.Dictionary = d.Dict.Name
		p.log.DebugContext(ctx, "dictd response",
			slog.String("word", word),
			slog.Int("definitions", len(defs)),
			slog.String("gender", def.Gender),
		)
		return def, nil
	}
	return nil, fmt.Errorf("dictd: define %q: %w", word, parseErr)
}

// Databases lists the databases offered by the server.
func (p *Provider) Databases(ctx context.Context) ([]string, error) {
	var dicts []dict.Dict
	err := p.withClient(ctx, func(c *dict.Client) error {
		var err error
		dicts, err = c.Dicts()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("dictd: show databases: %w", err)
	}
	names := make([]string, len(dicts))
	for i, d := range dicts {
		names[i] = d.Name
	}
	return names, nil
}

// Check verifies that the server is reachable and serves the configured
// database. It returns every database the server offers.
func (p *Provider) Check(ctx context.Context) ([]string, error) {
	names, err := p.Databases(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if n == p.database {
			return names, nil
		}
	}
	return names, fmt.Errorf("dictd: database %q not served by %s", p.database, p.addr)
}

// withClient dials the server, runs fn and closes the connection. The
// connection is closed early when ctx is done, which unblocks fn.
func (p *Provider) withClient(ctx context.Context, fn func(c *dict.Client) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dialed := make(chan dialResult, 1)
	go func() {
		c, err := dict.Dial("tcp", p.addr)
		dialed <- dialResult{c, err}
	}()

	var c *dict.Client
	select {
	case r := <-dialed:
		if r.err != nil {
			return fmt.Errorf("dial %s: %w", p.addr, r.err)
		}
		c = r.c
	case <-ctx.Done():
		go closeLate(dialed)
		return ctx.Err()
	case <-time.After(p.dialTimeout):
		go closeLate(dialed)
		return fmt.Errorf("dial %s: timeout after %s", p.addr, p.dialTimeout)
	}

	stop := context.AfterFunc(ctx, func() { c.Close() })
	err := fn(c)
	if stop() {
		c.Close()
	}
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type dialResult struct {
	c   *dict.Client
	err error
}

// closeLate releases a connection whose dial finished after the caller gave up.
func closeLate(dialed <-chan dialResult) {
	if r := <-dialed; r.err == nil {
		r.c.Close()
	}
}

func isNoMatch(err error) bool {
	var tpErr *textproto.Error
	return errors.As(err, &tpErr) && tpErr.Code == codeNoMatch
}
