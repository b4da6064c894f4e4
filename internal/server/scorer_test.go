package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer(0.20, -0.20)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "positive", text: "I love this, it is wonderful and amazing!", want: "Positive"},
		{name: "negative", text: "This is terrible. I hate it, awful experience.", want: "Negative"},
		{name: "neutral", text: "The table is made of wood.", want: "Neutral"},
		{name: "negated", text: "This is not good at all.", want: "Negative"},
		{name: "markdown", text: "**I love this** and [the docs](https://example.com) are *great*", want: "Positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := scorer.Score(tt.text)
			assert.Equal(t, tt.want, score.Label, "compound=%v", score.Compound)
			assert.GreaterOrEqual(t, score.Confidence, 0.0)
			assert.LessOrEqual(t, score.Confidence, 1.0)
		})
	}
}

func TestScorer_NeutralConfidence(t *testing.T) {
	score := NewScorer(0.20, -0.20).Score("The table is made of wood.")
	assert.Equal(t, 0.0, score.Compound)
	assert.Equal(t, "100.0%", score.Percentage())
}

func TestScore_Percentage(t *testing.T) {
	assert.Equal(t, "87.3%", Score{Confidence: 0.8731}.Percentage())
	assert.Equal(t, "0.0%", Score{}.Percentage())
}

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "see the docs here ", RemoveLinks("see [the docs](https://example.com/a) here https://x.io/y"))
	assert.Equal(t, "visit  now", RemoveLinks("visit www.example.com now"))
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("# Title\n\nSome **bold** and `code`, don't & won't.\n\n- item one\n- item two")
	assert.Equal(t, "Title Some bold and code , don't & won't. item one item two", got)
}
