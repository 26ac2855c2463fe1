package dictd

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/heartmarshall/deutschkurs/internal/provider"
)

// AttrGrammar keeps the raw grammar tags of a FreeDict headword line.
const AttrGrammar = "grammar"

// ParseEntry parses a FreeDict entry as returned by DEFINE:
//
//	Haus /haʊs/ <noun, sg, neut>
//	 1. house
//	 2. home
//
// The first non-empty line is the headword with optional pronunciation and
// grammar tags; the remaining lines are the senses.
func ParseEntry(text []byte) (*provider.Definition, error) {
	sc := bufio.NewScanner(bytes.NewReader(text))
	var (
		def    *provider.Definition
		senses []string
	)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if def == nil {
			def = parseHeadword(line)
			continue
		}
		if sense := trimSenseNumber(line); sense != "" {
			senses = append(senses, sense)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrMalformed, err)
	}
	if def == nil || def.Word == "" {
		return nil, fmt.Errorf("%w: missing headword", provider.ErrMalformed)
	}
	if len(senses) == 0 {
		return nil, fmt.Errorf("%w: %q has no senses", provider.ErrMalformed, def.Word)
	}
	def.Text = strings.Join(senses, "; ")
	return def, nil
}

func parseHeadword(line string) *provider.Definition {
	def := &provider.Definition{}

	if open := strings.IndexByte(line, '<'); open >= 0 {
		if end := strings.IndexByte(line[open:], '>'); end > 0 {
			tags := strings.TrimSpace(line[open+1 : open+end])
			line = line[:open] + line[open+end+1:]
			if tags != "" {
				def.Extra = map[string]string{AttrGrammar: tags}
			}
			for _, tag := range strings.FieldsFunc(tags, func(r rune) bool { return r == ',' || r == ' ' }) {
				if g := provider.NormalizeGender(tag); g != "" {
					def.Gender = g
					def.Article = provider.ArticleFor(g)
					break
				}
			}
		}
	}

	if open := strings.IndexByte(line, '/'); open >= 0 {
		if end := strings.IndexByte(line[open+1:], '/'); end >= 0 {
			def.Pronunciation = strings.TrimSpace(line[open+1 : open+1+end])
			line = line[:open] + line[open+end+2:]
		}
	}

	def.Word = strings.Join(strings.Fields(line), " ")
	return def
}

// trimSenseNumber strips list markers like "1." or "2)" from a sense line.
func trimSenseNumber(line string) string {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = line[i+1:]
	}
	return strings.TrimSpace(line)
}
