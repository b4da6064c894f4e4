package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"positive":   {"😊", "[+]"},
	"negative":   {"😞", "[-]"},
	"neutral":    {"😐", "[=]"},
	"sentiment":  {"🎭", "[SEN]"},
	"statistics": {"📊", "[STATS]"},
	"loading":    {"⏳", "[...]"},
	"rocket":     {"🚀", "[GO]"},
	"health":     {"💓", "[HC]"},
	"watch":      {"👀", "[W]"},
	"help":       {"❓", "[?]"},
	"door":       {"🚪", "[EXIT]"},
	"file":       {"📄", "[F]"},
	"folder":     {"📁", "[D]"},
	"target":     {"🎯", "[>]"},
	"idea":       {"💡", "[TIP]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// ForSentiment returns the emoji for a lower-cased sentiment class, falling
// back to the generic sentiment marker for labels it does not know.
func ForSentiment(class string) string {
	switch class {
	case "positive", "negative", "neutral":
		return GetEmoji(class)
	default:
		return GetEmoji("sentiment")
	}
}
