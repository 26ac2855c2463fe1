package dictd

import (
	"bufio"
	"fmt"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeServer is a minimal in-process DICT server.
type fakeServer struct {
	t        *testing.T
	ln       net.Listener
	database string
	entries  map[string]string   // headword -> entry text
	matches  map[string][]string // query -> suggestions

	mu       sync.Mutex
	commands []string
}

func newFakeServer(t *testing.T, entries map[string]string, matches map[string][]string) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &fakeServer{t: t, ln: ln, database: DefaultDatabase, entries: entries, matches: matches}
	t.Cleanup(func() { ln.Close() })
	go s.serve()
	return s
}

func (s *fakeServer) Addr() string { return s.ln.Addr().String() }

func (s *fakeServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeServer) handle(conn net.Conn) {
	defer conn.Close()
	r := textproto.NewReader(bufio.NewReader(conn))
	w := textproto.NewWriter(bufio.NewWriter(conn))

	w.PrintfLine("220 fake.dictd <auth.mime> <1.1@fake>")
	for {
		line, err := r.ReadLine()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.commands = append(s.commands, line)
		s.mu.Unlock()

		verb, args := splitCommand(line)
		switch verb {
		case "DEFINE":
			s.define(w, args)
		case "MATCH":
			s.match(w, args)
		case "SHOW":
			w.PrintfLine("110 1 databases present")
			dw := w.DotWriter()
			fmt.Fprintf(dw, "%s \"German-English FreeDict Dictionary\"\n", s.database)
			dw.Close()
			w.PrintfLine("250 ok")
		case "QUIT":
			w.PrintfLine("221 bye")
			return
		default:
			w.PrintfLine("500 unknown command")
		}
	}
}

func (s *fakeServer) define(w *textproto.Writer, args []string) {
	if len(args) != 2 || args[0] != s.database {
		w.PrintfLine("550 invalid database")
		return
	}
	text, ok := s.entries[args[1]]
	if !ok {
		w.PrintfLine("552 no match")
		return
	}
	w.PrintfLine("150 1 definitions retrieved")
	w.PrintfLine("151 %q %s \"German-English FreeDict Dictionary\"", args[1], s.database)
	dw := w.DotWriter()
	fmt.Fprint(dw, text)
	dw.Close()
	w.PrintfLine("250 ok")
}

func (s *fakeServer) match(w *textproto.Writer, args []string) {
	if len(args) != 3 || args[0] != s.database {
		w.PrintfLine("550 invalid database")
		return
	}
	found := s.matches[args[2]]
	if len(found) == 0 {
		w.PrintfLine("552 no match")
		return
	}
	w.PrintfLine("152 %d matches found", len(found))
	dw := w.DotWriter()
	for _, m := range found {
		fmt.Fprintf(dw, "%s %q\n", s.database, m)
	}
	dw.Close()
	w.PrintfLine("250 ok")
}

// splitCommand splits a command line into its verb and arguments,
// unquoting a trailing quoted argument.
func splitCommand(line string) (string, []string) {
	var args []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		if rest[0] == '"' {
			if q, err := strconv.QuotedPrefix(rest); err == nil {
				u, _ := strconv.Unquote(q)
				args = append(args, u)
				rest = strings.TrimSpace(rest[len(q):])
				continue
			}
		}
		field, tail, _ := strings.Cut(rest, " ")
		args = append(args, field)
		rest = strings.TrimSpace(tail)
	}
	if len(args) == 0 {
		return "", nil
	}
	return strings.ToUpper(args[0]), args[1:]
}
