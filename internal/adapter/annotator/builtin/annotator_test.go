package builtin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/deutschkurs/internal/domain"
)

func tok(text string, c domain.Category) domain.Token {
	return domain.Token{Text: text, Category: c}
}

func TestAnnotator_Annotate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []domain.Token
	}{
		{
			name: "simple sentence",
			text: "Das Haus ist groß.",
			want: []domain.Token{
				tok("Das", domain.CategoryDeterminer),
				tok("Haus", domain.CategoryNoun),
				tok("ist", domain.CategoryAuxiliary),
				tok("groß", domain.CategoryAdjective),
				tok(".", domain.CategoryPunctuation),
			},
		},
		{
			name: "date and umlaut",
			text: "Am 16.02.2021 kaufte ich Äpfel.",
			want: []domain.Token{
				tok("Am", domain.CategoryAdposition),
				tok("16.02.2021", domain.CategoryNumeral),
				tok("kaufte", domain.CategoryVerb),
				tok("ich", domain.CategoryPronoun),
				tok("Äpfel", domain.CategoryNoun),
				tok(".", domain.CategoryPunctuation),
			},
		},
		{
			name: "polite pronoun mid sentence",
			text: "Ich sehe Sie.",
			want: []domain.Token{
				tok("Ich", domain.CategoryPronoun),
				tok("sehe", domain.CategoryVerb),
				tok("Sie", domain.CategoryPronoun),
				tok(".", domain.CategoryPunctuation),
			},
		},
		{
			name: "inflected adjectives",
			text: "die kleinen Kinder und wichtige Fragen",
			want: []domain.Token{
				tok("die", domain.CategoryDeterminer),
				tok("kleinen", domain.CategoryAdjective),
				tok("Kinder", domain.CategoryNoun),
				tok("und", domain.CategoryCoordinatingConjunction),
				tok("wichtige", domain.CategoryAdjective),
				tok("Fragen", domain.CategoryNoun),
			},
		},
		{
			name: "unknown word between determiner and noun",
			text: "das wuffe Haus",
			want: []domain.Token{
				tok("das", domain.CategoryDeterminer),
				tok("wuffe", domain.CategoryAdjective),
				tok("Haus", domain.CategoryNoun),
			},
		},
		{
			name: "suffix heuristics",
			text: "freundlich glücklicherweise",
			want: []domain.Token{
				tok("freundlich", domain.CategoryAdjective),
				tok("glücklicherweise", domain.CategoryAdverb),
			},
		},
		{
			name: "particle adverb numeral",
			text: "Heute kommt er nicht, drei Tage!",
			want: []domain.Token{
				tok("Heute", domain.CategoryAdverb),
				tok("kommt", domain.CategoryVerb),
				tok("er", domain.CategoryPronoun),
				tok("nicht", domain.CategoryParticle),
				tok(",", domain.CategoryPunctuation),
				tok("drei", domain.CategoryNumeral),
				tok("Tage", domain.CategoryNoun),
				tok("!", domain.CategoryPunctuation),
			},
		},
		{
			name: "hyphenated noun and acronym",
			text: "Die E-Mail aus der EU",
			want: []domain.Token{
				tok("Die", domain.CategoryDeterminer),
				tok("E-Mail", domain.CategoryNoun),
				tok("aus", domain.CategoryAdposition),
				tok("der", domain.CategoryDeterminer),
				tok("EU", domain.CategoryProperNoun),
			},
		},
		{
			name: "paragraph break and symbol",
			text: "Preis\n\n5 €",
			want: []domain.Token{
				tok("Preis", domain.CategoryNoun),
				tok("\n\n", domain.CategorySpace),
				tok("5", domain.CategoryNumeral),
				tok("€", domain.CategorySymbol),
			},
		},
		{
			name: "empty",
			text: "   ",
			want: []domain.Token{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := New().Annotate(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnnotator_Annotate_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Annotate(ctx, "Haus")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenize_Numbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want []string
	}{
		{"16.02.2021.", []string{"16.02.2021", "."}},
		{"3,5 Liter", []string{"3,5", "Liter"}},
		{"um 12:30", []string{"um", "12:30"}},
		{"A4-Papier", []string{"A4-Papier"}},
		{"geht's", []string{"geht's"}},
		{"Ende-", []string{"Ende", "-"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, rt := range tokenize(tt.text) {
				got = append(got, rt.text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnnotator_QualifyingWords(t *testing.T) {
	t.Parallel()

	tokens, err := New().Annotate(context.Background(), "Am 16.02.2021 las ich 3 Bücher über A4-Papier.")
	require.NoError(t, err)

	var words []string
	for _, tk := range tokens {
		if domain.Qualifies(tk) {
			words = append(words, tk.Text)
		}
	}
	assert.Equal(t, []string{"Am", "las", "ich", "Bücher", "über"}, words)
}
