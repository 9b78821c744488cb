package editor

import (
	"strings"
	"unicode/utf8"
)

const fallbackTitleLimit = 80

// DeriveTitle returns a display title for the document: the flattened
// text of the first heading, falling back to the first non-empty
// block's text truncated to a reasonable length. An empty string means
// the document has no usable title.
func DeriveTitle(doc Doc) string {
	if title := firstHeadingText(doc.Content); title != "" {
		return title
	}

	for _, node := range doc.Content {
		text := strings.TrimSpace(flattenText(node))
		if text == "" {
			continue
		}
		return truncateTitle(text, fallbackTitleLimit)
	}
	return ""
}

func firstHeadingText(nodes []Node) string {
	for _, node := range nodes {
		if node.Type == "heading" {
			if text := strings.TrimSpace(flattenText(node)); text != "" {
				return text
			}
			continue
		}
		if text := firstHeadingText(node.Content); text != "" {
			return text
		}
	}
	return ""
}

func truncateTitle(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
