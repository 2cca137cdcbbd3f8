package discord

import "time"

// Embed is a rich message embed.
type Embed struct {
	Author      *EmbedAuthor    `json:"author,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Color       int             `json:"color,omitempty"`
	Fields      []EmbedField    `json:"fields,omitempty"`
	Thumbnail   *EmbedThumbnail `json:"thumbnail,omitempty"`
	Footer      *EmbedFooter    `json:"footer,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
}

type EmbedAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type EmbedThumbnail struct {
	URL string `json:"url"`
}

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// Timestamp formats a time for the embed timestamp field.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

var boldDigits = map[rune]rune{
	'0': '𝟎', '1': '𝟏', '2': '𝟐', '3': '𝟑', '4': '𝟒',
	'5': '𝟓', '6': '𝟔', '7': '𝟕', '8': '𝟖', '9': '𝟗',
}

// BoldDigits renders the digits of s with mathematical bold unicode
// codepoints, as used in channel names. Non-digit runes pass through.
func BoldDigits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if b, ok := boldDigits[r]; ok {
			out = append(out, b)
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
