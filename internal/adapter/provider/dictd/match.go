package dictd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/textproto"
	"strconv"
	"strings"
)

// DICT status codes used by MATCH.
const (
	codeBanner   = 220
	codeMatches  = 152
	codeOK       = 250
	maxSuggested = 10
)

// Search asks the server for headwords similar to word using the configured
// MATCH strategy. Duplicates are dropped, server order is kept. An empty
// result is not an error.
func (p *Provider) Search(ctx context.Context, word string) ([]string, error) {
	p.log.DebugContext(ctx, "dictd match",
		slog.String("word", word),
		slog.String("strategy", p.strategy),
	)

	lines, err := p.match(ctx, word)
	if isNoMatch(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dictd: match %q: %w", word, err)
	}

	seen := make(map[string]struct{}, len(lines))
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		w, ok := parseMatchLine(line)
		if !ok {
			p.log.WarnContext(ctx, "dictd malformed match line", slog.String("line", line))
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
		if len(words) == maxSuggested {
			break
		}
	}
	return words, nil
}

// match runs one MATCH command on a fresh connection. x/net/dict has no
// MATCH support, so this speaks the protocol directly.
func (p *Provider) match(ctx context.Context, word string) ([]string, error) {
	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", p.addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	tc := textproto.NewConn(conn)
	defer tc.Close()
	stop := context.AfterFunc(ctx, func() { tc.Close() })
	defer stop()

	lines, err := matchOn(tc, p.database, p.strategy, word)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return lines, err
}

func matchOn(tc *textproto.Conn, database, strategy, word string) ([]string, error) {
	if _, _, err := tc.ReadCodeLine(codeBanner); err != nil {
		return nil, err
	}
	id, err := tc.Cmd("MATCH %s %s %q", database, strategy, word)
	if err != nil {
		return nil, err
	}
	tc.StartResponse(id)
	defer tc.EndResponse(id)

	if _, _, err := tc.ReadCodeLine(codeMatches); err != nil {
		return nil, err
	}
	lines, err := tc.ReadDotLines()
	if err != nil {
		return nil, err
	}
	if _, _, err := tc.ReadCodeLine(codeOK); err != nil {
		return nil, err
	}
	_, _ = tc.Cmd("QUIT")
	return lines, nil
}

// parseMatchLine splits a MATCH result line of the form
//
//	fd-deu-eng "Häuser"
//
// and returns the unquoted word.
func parseMatchLine(line string) (string, bool) {
	_, rest, ok := strings.Cut(strings.TrimSpace(line), " ")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if w, err := strconv.Unquote(rest); err == nil {
		rest = w
	} else {
		rest = strings.Trim(rest, `"`)
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}
