package server

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

// Score is the outcome of scoring one text
type Score struct {
	Label      string
	Compound   float64
	Confidence float64
}

// Percentage renders the confidence the way the service reports it
func (s Score) Percentage() string {
	return fmt.Sprintf("%.1f%%", s.Confidence*100)
}

// Scorer labels text with VADER
type Scorer struct {
	analyzer          *govader.SentimentIntensityAnalyzer
	positiveThreshold float64
	negativeThreshold float64
}

// NewScorer creates a scorer; compound scores at or above positive are
// Positive, at or below negative are Negative, everything else Neutral.
func NewScorer(positive, negative float64) *Scorer {
	return &Scorer{
		analyzer:          govader.NewSentimentIntensityAnalyzer(),
		positiveThreshold: positive,
		negativeThreshold: negative,
	}
}

// Score labels text
func (s *Scorer) Score(text string) Score {
	plain := ConvertMarkdownToText(text)
	compound := s.analyzer.PolarityScores(plain).Compound

	switch {
	case compound >= s.positiveThreshold:
		return Score{Label: "Positive", Compound: compound, Confidence: math.Abs(compound)}
	case compound <= s.negativeThreshold:
		return Score{Label: "Negative", Compound: compound, Confidence: math.Abs(compound)}
	default:
		return Score{Label: "Neutral", Compound: compound, Confidence: 1 - math.Abs(compound)}
	}
}

// RemoveLinks keeps link text and drops bare URLs
func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and flattens it to plain words
func ConvertMarkdownToText(input string) string {
	// Smartypants stays off so negations like "don't" reach VADER unchanged.
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: blackfriday.UseXHTML})
	rendered := blackfriday.Run([]byte(RemoveLinks(input)),
		blackfriday.WithNoExtensions(),
		blackfriday.WithRenderer(renderer))
	text := html.UnescapeString(tagPattern.ReplaceAllString(string(rendered), " "))
	return strings.Join(strings.Fields(text), " ")
}
