package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetThemeByName(t *testing.T) {
	defer SetTheme(&DefaultTheme)

	for _, name := range GetAvailableThemes() {
		assert.True(t, SetThemeByName(name), name)
		assert.Equal(t, name, GetTheme().Name)
	}

	assert.True(t, SetThemeByName(""))
	assert.Equal(t, "default", GetTheme().Name)
	assert.False(t, SetThemeByName("neon"))
}

func TestBadgeColor(t *testing.T) {
	theme := DefaultTheme

	assert.Equal(t, theme.Positive, theme.BadgeColor("positive"))
	assert.Equal(t, theme.Negative, theme.BadgeColor("Negative"))
	assert.Equal(t, theme.Neutral, theme.BadgeColor("neutral"))
	assert.Equal(t, theme.Other, theme.BadgeColor("mixed"))
}

func TestBadgeWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, "[Positive Sentiment]", GetStyles().Badge("Positive Sentiment", "positive"))
}
