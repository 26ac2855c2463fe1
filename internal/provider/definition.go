package provider

import (
	"errors"
	"strings"
)

// ErrMalformed is returned when a dictionary answered but its entry cannot
// be interpreted.
var ErrMalformed = errors.New("malformed dictionary entry")

// Attribute keys exported by Definition.Attributes.
const (
	AttrName          = "name"
	AttrArticle       = "article"
	AttrGender        = "gender"
	AttrPronunciation = "pronunciation"
	AttrDefinition    = "definition"
	AttrDictionary    = "dictionary"
)

// Definition is the structured result of an exact dictionary lookup.
type Definition struct {
	// Word is the headword as spelled by the dictionary.
	Word string
	// Dictionary names the database that answered, e.g. "fd-deu-eng".
	Dictionary    string
	Gender        string
	Article       string
	Pronunciation string
	// Text is the definition body.
	Text string
	// Extra holds provider-specific attributes.
	Extra map[string]string
}

// Attributes flattens the definition into the attribute map merged into a
// vocabulary entry. Empty values are omitted.
func (d *Definition) Attributes() map[string]string {
	attrs := make(map[string]string, 6+len(d.Extra))
	for k, v := range d.Extra {
		attrs[k] = v
	}
	set := func(k, v string) {
		if v != "" {
			attrs[k] = v
		}
	}
	set(AttrName, d.Word)
	set(AttrArticle, d.Article)
	set(AttrGender, d.Gender)
	set(AttrPronunciation, d.Pronunciation)
	set(AttrDefinition, d.Text)
	set(AttrDictionary, d.Dictionary)
	return attrs
}

// Gender values.
const (
	GenderMasculine = "masculine"
	GenderFeminine  = "feminine"
	GenderNeuter    = "neuter"
)

var genderAliases = map[string]string{
	"m":          GenderMasculine,
	"masc":       GenderMasculine,
	"masculine":  GenderMasculine,
	"maskulinum": GenderMasculine,
	"f":          GenderFeminine,
	"fem":        GenderFeminine,
	"feminine":   GenderFeminine,
	"femininum":  GenderFeminine,
	"n":          GenderNeuter,
	"neut":       GenderNeuter,
	"neuter":     GenderNeuter,
	"neutrum":    GenderNeuter,
}

var articles = map[string]string{
	GenderMasculine: "der",
	GenderFeminine:  "die",
	GenderNeuter:    "das",
}

// NormalizeGender maps a dictionary gender tag ("m", "fem", "Neutrum") to
// one of the Gender values. Unknown tags return "".
func NormalizeGender(tag string) string {
	return genderAliases[strings.ToLower(strings.Trim(tag, " .,"))]
}

// ArticleFor returns the definite article of a normalized gender, or "".
func ArticleFor(gender string) string {
	return articles[gender]
}
