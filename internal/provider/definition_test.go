package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefinition_Attributes(t *testing.T) {
	t.Parallel()

	d := &Definition{
		Word:          "Haus",
		Dictionary:    "fd-deu-eng",
		Gender:        GenderNeuter,
		Article:       "das",
		Pronunciation: "haʊs",
		Text:          "house; home",
		Extra:         map[string]string{"plural": "Häuser"},
	}

	assert.Equal(t, map[string]string{
		"name":          "Haus",
		"dictionary":    "fd-deu-eng",
		"gender":        "neuter",
		"article":       "das",
		"pronunciation": "haʊs",
		"definition":    "house; home",
		"plural":        "Häuser",
	}, d.Attributes())
}

func TestDefinition_Attributes_OmitsEmpty(t *testing.T) {
	t.Parallel()

	d := &Definition{Word: "laufen", Text: "to run"}

	assert.Equal(t, map[string]string{"name": "laufen", "definition": "to run"}, d.Attributes())
}

func TestNormalizeGender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want string
	}{
		{"m", GenderMasculine},
		{"masc", GenderMasculine},
		{"Maskulinum", GenderMasculine},
		{"f", GenderFeminine},
		{"fem.", GenderFeminine},
		{"n", GenderNeuter},
		{"neut", GenderNeuter},
		{"Neutrum", GenderNeuter},
		{"pl", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeGender(tt.tag))
		})
	}
}

func TestArticleFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "der", ArticleFor(GenderMasculine))
	assert.Equal(t, "die", ArticleFor(GenderFeminine))
	assert.Equal(t, "das", ArticleFor(GenderNeuter))
	assert.Equal(t, "", ArticleFor("plural"))
}
