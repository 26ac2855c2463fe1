package personal

import (
	"time"

	"github.com/heartmarshall/deutschkurs/internal/provider"
)

// record is the persisted outcome of one exact lookup.
type record struct {
	Word       string      `json:"word"`
	Dictionary string      `json:"dictionary"`
	Found      bool        `json:"found"`
	Definition *definition `json:"definition,omitempty"`
	LookedUpAt time.Time   `json:"looked_up_at"`
}

type definition struct {
	Word          string            `json:"word"`
	Dictionary    string            `json:"dictionary,omitempty"`
	Gender        string            `json:"gender,omitempty"`
	Article       string            `json:"article,omitempty"`
	Pronunciation string            `json:"pronunciation,omitempty"`
	Text          string            `json:"text"`
	Extra         map[string]string `json:"extra,omitempty"`
}

func newRecord(word, database string, def *provider.Definition, at time.Time) *record {
	rec := &record{Word: word, Dictionary: database, LookedUpAt: at.UTC()}
	if def == nil {
		return rec
	}
	rec.Found = true
	rec.Definition = &definition{
		Word:          def.Word,
		Dictionary:    def.Dictionary,
		Gender:        def.Gender,
		Article:       def.Article,
		Pronunciation: def.Pronunciation,
		Text:          def.Text,
		Extra:         def.Extra,
	}
	return rec
}

func (r *record) toDefinition() *provider.Definition {
	if !r.Found || r.Definition == nil {
		return nil
	}
	d := r.Definition
	return &provider.Definition{
		Word:          d.Word,
		Dictionary:    d.Dictionary,
		Gender:        d.Gender,
		Article:       d.Article,
		Pronunciation: d.Pronunciation,
		Text:          d.Text,
		Extra:         d.Extra,
	}
}
