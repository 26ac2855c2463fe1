package domain

import "testing"

func TestMapCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Category
	}{
		{"NOUN", CategoryNoun},
		{"noun", CategoryNoun},
		{"Propn", CategoryProperNoun},
		{"VERB", CategoryVerb},
		{"ADJ", CategoryAdjective},
		{"PUNCT", CategoryPunctuation},
		{"SPACE", CategorySpace},
		{"NUM", CategoryNumeral},
		{" det ", CategoryDeterminer},

		// Aliases outside the Universal set
		{"CONJ", CategoryCoordinatingConjunction},
		{"_SP", CategorySpace},

		// Unknown values -> OTHER
		{"NN", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := MapCategory(tt.input); got != tt.want {
				t.Errorf("MapCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategory_Label(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		want     string
	}{
		{CategoryNoun, "Noun"},
		{CategoryVerb, "Verb"},
		{CategoryAdjective, "Adjective"},
		{CategoryProperNoun, "Proper Noun"},
		{CategoryAdposition, "Adposition"},
		{CategoryCoordinatingConjunction, "Coordinating Conjunction"},
		{CategoryOther, "Other"},
		{Category("BOGUS"), "Other"},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			t.Parallel()
			if got := tt.category.Label(); got != tt.want {
				t.Errorf("Category(%q).Label() = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestCategory_IsExcluded(t *testing.T) {
	t.Parallel()

	excluded := []Category{CategoryPunctuation, CategorySpace, CategoryNumeral}
	for _, c := range excluded {
		if !c.IsExcluded() {
			t.Errorf("%s.IsExcluded() = false, want true", c)
		}
	}
	kept := []Category{CategoryNoun, CategoryVerb, CategoryAdjective, CategorySymbol, CategoryOther}
	for _, c := range kept {
		if c.IsExcluded() {
			t.Errorf("%s.IsExcluded() = true, want false", c)
		}
	}
}

func TestCategory_IsNoun(t *testing.T) {
	t.Parallel()

	if !CategoryNoun.IsNoun() {
		t.Error("NOUN.IsNoun() = false")
	}
	if CategoryProperNoun.IsNoun() {
		t.Error("PROPN.IsNoun() = true, proper nouns are not enriched")
	}
}

func TestIsCandidateWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"Haus", true},
		{"Straße", true},
		{"16.02.2021", false},
		{"16.02.2021.", false},
		{"A4", false},
		{"2021er", false},
		{"m²", false},
		{"CO₂", false},
		{"①", false},
		{"٣", false},
		{"½", true},
		{"...", true},
		{"E-Mail", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := IsCandidateWord(tt.text); got != tt.want {
				t.Errorf("IsCandidateWord(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestQualifies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token Token
		want  bool
	}{
		{"noun", Token{Text: "Haus", Category: CategoryNoun}, true},
		{"verb", Token{Text: "laufen", Category: CategoryVerb}, true},
		{"punctuation excluded regardless of text", Token{Text: "Haus", Category: CategoryPunctuation}, false},
		{"punctuation", Token{Text: "!", Category: CategoryPunctuation}, false},
		{"space", Token{Text: "\n", Category: CategorySpace}, false},
		{"numeral", Token{Text: "drei", Category: CategoryNumeral}, false},
		{"date tagged as adjective", Token{Text: "16.02.2021.", Category: CategoryAdjective}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Qualifies(tt.token); got != tt.want {
				t.Errorf("Qualifies(%+v) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
