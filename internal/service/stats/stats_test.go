package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/deutschkurs/internal/domain"
)

func scenarioCache() *domain.Cache {
	c := domain.NewCache()
	c.Upsert("a", "Haus", domain.CategoryNoun, nil)
	c.Upsert("a", "laufen", domain.CategoryVerb, nil)
	c.Upsert("b", "laufen", domain.CategoryVerb, nil)
	return c
}

func TestCompute_Scenario(t *testing.T) {
	t.Parallel()

	st := Compute(scenarioCache())

	assert.Equal(t, domain.Statistics{
		LenWords:  2,
		LenTopics: 2,
		LenPos:    2,
		Topics:    map[string]int{"a": 2, "b": 1},
		Pos:       map[string]int{"Noun": 1, "Verb": 1},
	}, st)
}

func TestCompute_Empty(t *testing.T) {
	t.Parallel()

	st := Compute(domain.NewCache())

	assert.Zero(t, st.LenWords)
	assert.Zero(t, st.LenTopics)
	assert.Zero(t, st.LenPos)
	assert.NotNil(t, st.Topics)
	assert.NotNil(t, st.Pos)
}

func TestCompute_RegisteredTopicWithoutWords(t *testing.T) {
	t.Parallel()

	c := scenarioCache()
	c.RegisterTopic("leer")

	st := Compute(c)

	assert.Equal(t, 2, st.LenTopics)
	assert.NotContains(t, st.Topics, "leer")
}

func TestRanked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		counts map[string]int
		want   []Row
	}{
		{name: "empty", counts: nil, want: []Row{}},
		{
			name:   "count desc",
			counts: map[string]int{"a": 1, "b": 3, "c": 2},
			want:   []Row{{"b", 3}, {"c", 2}, {"a", 1}},
		},
		{
			name:   "ties by name",
			counts: map[string]int{"Verb": 2, "Noun": 2, "Adverb": 1},
			want:   []Row{{"Noun", 2}, {"Verb", 2}, {"Adverb", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Ranked(tt.counts))
		})
	}
}

func TestNewReport_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewReport(scenarioCache()))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"len_words": 2,
		"len_topics": 2,
		"len_pos": 2,
		"topics": {"a": 2, "b": 1},
		"pos": {"Noun": 1, "Verb": 1},
		"ranked_topics": [{"name": "a", "count": 2}, {"name": "b", "count": 1}],
		"ranked_pos": [{"name": "Noun", "count": 1}, {"name": "Verb", "count": 1}]
	}`, string(data))
}
