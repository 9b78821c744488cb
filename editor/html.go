package editor

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// Raw HTML token handling. Recognized formatting tags map onto marks
// and hard breaks; every other tag is dropped and only its text
// content survives. Opening and closing tags usually arrive as
// separate raw inline tokens, so mark state is kept on the shared
// inline stack and persists across sibling tokens.

func readHTMLInline(ctx ReadContext, raw string) []Node {
	var content []Node

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	for {
		tokenType := tokenizer.Next()
		if tokenType == xhtml.ErrorToken {
			return content
		}

		switch tokenType {
		case xhtml.TextToken:
			text := string(tokenizer.Text())
			if text != "" {
				content = appendInlineNode(content, newTextNode(text, ctx.Marks()))
			}

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "br":
				content = append(content, Node{Type: "hard_break"})
			case "u":
				ctx.stack.push(Mark{Type: "underline"})
			case "sub":
				ctx.stack.push(Mark{Type: "subsup", Attrs: map[string]any{"type": "sub"}})
			case "sup":
				ctx.stack.push(Mark{Type: "subsup", Attrs: map[string]any{"type": "sup"}})
			}

		case xhtml.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "u":
				ctx.stack.popByType("underline")
			case "sub", "sup":
				ctx.stack.popByType("subsup")
			}
		}
	}
}

// readHTMLBlock strips an HTML block to a plain paragraph: tags are
// discarded and only text content is kept.
func readHTMLBlock(ctx ReadContext, raw string) []Node {
	var sb strings.Builder

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	for {
		tokenType := tokenizer.Next()
		if tokenType == xhtml.ErrorToken {
			break
		}
		switch tokenType {
		case xhtml.TextToken:
			sb.WriteString(string(tokenizer.Text()))
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			if name, _ := tokenizer.TagName(); string(name) == "br" {
				sb.WriteByte('\n')
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		ctx.Warn(WarningDroppedFeature, "RawBlock", "html block without text content dropped")
		return nil
	}

	var content []Node
	for idx, line := range strings.Split(text, "\n") {
		if idx > 0 {
			content = append(content, Node{Type: "hard_break"})
		}
		if line = strings.TrimSpace(line); line != "" {
			content = appendInlineNode(content, newTextNode(line, nil))
		}
	}
	return []Node{{Type: "paragraph", Content: content}}
}
