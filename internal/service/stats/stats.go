// Package stats derives reporting figures from a vocabulary cache.
package stats

import (
	"cmp"
	"slices"

	"github.com/heartmarshall/deutschkurs/internal/domain"
)

// Compute counts words per topic and per part of speech in one pass over
// the cache keys in sorted order.
func Compute(c *domain.Cache) domain.Statistics {
	st := domain.Statistics{
		LenWords: c.Len(),
		Topics:   make(map[string]int),
		Pos:      make(map[string]int),
	}
	for _, k := range c.Keys() {
		e := c.Words[k]
		for _, t := range e.Topics {
			st.Topics[t]++
		}
		st.Pos[e.PartOfSpeech]++
	}
	st.LenTopics = len(st.Topics)
	st.LenPos = len(st.Pos)
	return st
}

// Row is one line of a ranked report.
type Row struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Ranked orders counts by descending count, then by name.
func Ranked(counts map[string]int) []Row {
	rows := make([]Row, 0, len(counts))
	for name, n := range counts {
		rows = append(rows, Row{Name: name, Count: n})
	}
	slices.SortFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return rows
}

// Report is the printable form of Statistics.
type Report struct {
	domain.Statistics
	RankedTopics []Row `json:"ranked_topics"`
	RankedPos    []Row `json:"ranked_pos"`
}

// NewReport computes statistics for c together with ranked views.
func NewReport(c *domain.Cache) Report {
	st := Compute(c)
	return Report{
		Statistics:   st,
		RankedTopics: Ranked(st.Topics),
		RankedPos:    Ranked(st.Pos),
	}
}
