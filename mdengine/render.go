package mdengine

import (
	"fmt"
	"strings"

	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

// renderBlocks renders a block token sequence as GFM-flavored markdown.
func renderBlocks(blocks []pandoc.Token) string {
	r := &renderer{}
	out := strings.TrimRight(r.renderChildren(blocks), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

type renderer struct{}

func (r *renderer) renderChildren(blocks []pandoc.Token) string {
	var sb strings.Builder
	for _, block := range blocks {
		sb.WriteString(r.renderBlock(block))
	}
	return sb.String()
}

func (r *renderer) renderBlock(block pandoc.Token) string {
	items := payloadItems(block.C)

	switch block.T {
	case "Para":
		content := r.renderInlines(tokensFrom(block.C))
		if content == "" {
			return ""
		}
		return content + "\n\n"

	case "Plain":
		// Plain is the tight variant: no blank line after it.
		content := r.renderInlines(tokensFrom(block.C))
		if content == "" {
			return ""
		}
		return content + "\n"

	case "Header":
		return r.renderHeader(items)

	case "BlockQuote":
		content := r.renderChildren(tokensFrom(block.C))
		quoted := r.blockquoteContent(content)
		if quoted == "" {
			return ""
		}
		return quoted + "\n\n"

	case "HorizontalRule":
		return "---\n\n"

	case "CodeBlock":
		return r.renderCodeBlock(items)

	case "BulletList":
		return r.renderBulletList(items)

	case "OrderedList":
		return r.renderOrderedList(items)

	case "Table":
		return r.renderTable(items)

	case "RawBlock":
		if len(items) >= 2 {
			if format, ok := items[0].(string); ok && format == "html" {
				if raw, ok := items[1].(string); ok && raw != "" {
					return raw + "\n\n"
				}
			}
		}
		return ""

	case "LineBlock":
		return r.renderLineBlock(items)

	case "Div":
		if len(items) >= 2 {
			return r.renderChildren(tokensFrom(items[1]))
		}
		return ""

	case "Figure":
		if len(items) >= 3 {
			return r.renderChildren(tokensFrom(items[2]))
		}
		return ""

	case "DefinitionList":
		return r.renderDefinitionList(items)

	default:
		// Unrecognized blocks degrade to their collected text.
		text := pandoc.CollectText([]pandoc.Token{block})
		if strings.TrimSpace(text) == "" {
			return ""
		}
		return text + "\n\n"
	}
}

func (r *renderer) renderHeader(items []any) string {
	if len(items) < 3 {
		return ""
	}
	level := intFrom(items[0], 1)
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	content := r.renderInlines(tokensFrom(items[2]))
	if content == "" {
		return ""
	}
	content = strings.TrimSuffix(content, "\\")
	return strings.Repeat("#", level) + " " + content + "\n\n"
}

func (r *renderer) renderCodeBlock(items []any) string {
	if len(items) < 2 {
		return ""
	}
	code, _ := items[1].(string)
	language := firstClass(items[0])

	fence := "```"
	for strings.Contains(code, fence) {
		fence += "`"
	}

	var sb strings.Builder
	sb.WriteString(fence)
	sb.WriteString(language)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRight(code, "\n"))
	sb.WriteString("\n")
	sb.WriteString(fence)
	sb.WriteString("\n\n")
	return sb.String()
}

func (r *renderer) renderBulletList(items []any) string {
	var sb strings.Builder
	for _, item := range items {
		content := r.renderChildren(tokensFrom(item))
		indented := r.indent(content, "- ")
		if indented == "" {
			continue
		}
		sb.WriteString(indented)
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		return ""
	}
	return sb.String() + "\n"
}

func (r *renderer) renderOrderedList(items []any) string {
	if len(items) < 2 {
		return ""
	}
	start := 1
	if attrs := payloadItems(items[0]); len(attrs) > 0 {
		start = intFrom(attrs[0], 1)
	}

	var sb strings.Builder
	number := start
	for _, item := range payloadItems(items[1]) {
		content := r.renderChildren(tokensFrom(item))
		marker := fmt.Sprintf("%d. ", number)
		indented := r.indent(content, marker)
		if indented == "" {
			continue
		}
		sb.WriteString(indented)
		sb.WriteString("\n")
		number++
	}
	if sb.Len() == 0 {
		return ""
	}
	return sb.String() + "\n"
}

func (r *renderer) renderLineBlock(items []any) string {
	var lines []string
	for _, line := range items {
		lines = append(lines, "| "+r.renderInlines(tokensFrom(line)))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n\n"
}

func (r *renderer) renderDefinitionList(items []any) string {
	var sb strings.Builder
	for _, entry := range items {
		pair := payloadItems(entry)
		if len(pair) < 2 {
			continue
		}
		term := r.renderInlines(tokensFrom(pair[0]))
		if term != "" {
			sb.WriteString("**" + term + "**\n\n")
		}
		for _, definition := range payloadItems(pair[1]) {
			sb.WriteString(r.renderChildren(tokensFrom(definition)))
		}
	}
	return sb.String()
}

// blockquoteContent prefixes every line of content with "> ".
func (r *renderer) blockquoteContent(content string) string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	quoted := make([]string, 0, len(lines))
	for _, line := range lines {
		switch {
		case line == "":
			quoted = append(quoted, "> ")
		case strings.HasPrefix(line, ">"):
			quoted = append(quoted, ">"+line)
		default:
			quoted = append(quoted, "> "+line)
		}
	}
	return strings.Join(quoted, "\n")
}

// indent prefixes the first line with marker and later lines with matching spaces.
func (r *renderer) indent(content, marker string) string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	pad := strings.Repeat(" ", len(marker))

	result := make([]string, 0, len(lines))
	for i, line := range lines {
		switch {
		case i == 0:
			result = append(result, marker+line)
		case line == "":
			result = append(result, "")
		default:
			result = append(result, pad+line)
		}
	}
	return strings.Join(result, "\n")
}

func (r *renderer) renderInlines(inlines []pandoc.Token) string {
	var sb strings.Builder
	for _, inline := range inlines {
		sb.WriteString(r.renderInline(inline))
	}
	return sb.String()
}

func (r *renderer) renderInline(inline pandoc.Token) string {
	items := payloadItems(inline.C)

	switch inline.T {
	case "Str":
		text, _ := inline.C.(string)
		return text

	case "Space":
		return " "

	case "SoftBreak":
		return "\n"

	case "LineBreak":
		return "\\\n"

	case "Emph":
		return wrapInline(r.renderInlines(tokensFrom(inline.C)), "*")

	case "Strong":
		return wrapInline(r.renderInlines(tokensFrom(inline.C)), "**")

	case "Strikeout":
		return wrapInline(r.renderInlines(tokensFrom(inline.C)), "~~")

	case "Underline":
		content := r.renderInlines(tokensFrom(inline.C))
		if content == "" {
			return ""
		}
		return "<u>" + content + "</u>"

	case "Subscript":
		content := r.renderInlines(tokensFrom(inline.C))
		if content == "" {
			return ""
		}
		return "<sub>" + content + "</sub>"

	case "Superscript":
		content := r.renderInlines(tokensFrom(inline.C))
		if content == "" {
			return ""
		}
		return "<sup>" + content + "</sup>"

	case "SmallCaps", "Span":
		if inline.T == "Span" && len(items) >= 2 {
			return r.renderInlines(tokensFrom(items[1]))
		}
		return r.renderInlines(tokensFrom(inline.C))

	case "Code":
		return r.renderCodeSpan(items)

	case "Math":
		if len(items) >= 2 {
			if formula, ok := items[1].(string); ok {
				return "$" + formula + "$"
			}
		}
		return ""

	case "Link":
		return r.renderLink(items)

	case "Image":
		return r.renderImage(items)

	case "Quoted":
		return r.renderQuoted(items)

	case "RawInline":
		if len(items) >= 2 {
			if format, ok := items[0].(string); ok && format == "html" {
				raw, _ := items[1].(string)
				return raw
			}
		}
		return ""

	default:
		return pandoc.CollectText([]pandoc.Token{inline})
	}
}

func (r *renderer) renderCodeSpan(items []any) string {
	if len(items) < 2 {
		return ""
	}
	code, _ := items[1].(string)
	if code == "" {
		return ""
	}

	delim := "`"
	for strings.Contains(code, delim) {
		delim += "`"
	}
	if strings.HasPrefix(code, "`") || strings.HasSuffix(code, "`") {
		return delim + " " + code + " " + delim
	}
	return delim + code + delim
}

func (r *renderer) renderLink(items []any) string {
	if len(items) < 3 {
		return ""
	}
	label := r.renderInlines(tokensFrom(items[1]))
	target := payloadItems(items[2])
	url := ""
	title := ""
	if len(target) > 0 {
		url, _ = target[0].(string)
	}
	if len(target) > 1 {
		title, _ = target[1].(string)
	}

	if label == url {
		return "<" + url + ">"
	}
	if title != "" {
		return fmt.Sprintf("[%s](%s %q)", label, url, title)
	}
	return fmt.Sprintf("[%s](%s)", label, url)
}

func (r *renderer) renderImage(items []any) string {
	if len(items) < 3 {
		return ""
	}
	alt := r.renderInlines(tokensFrom(items[1]))
	target := payloadItems(items[2])
	src := ""
	title := ""
	if len(target) > 0 {
		src, _ = target[0].(string)
	}
	if len(target) > 1 {
		title, _ = target[1].(string)
	}

	if title != "" {
		return fmt.Sprintf("![%s](%s %q)", alt, src, title)
	}
	return fmt.Sprintf("![%s](%s)", alt, src)
}

func (r *renderer) renderQuoted(items []any) string {
	if len(items) < 2 {
		return ""
	}
	delim := "\""
	if quote, ok := items[0].(pandoc.Token); ok && quote.T == "SingleQuote" {
		delim = "'"
	}
	return delim + r.renderInlines(tokensFrom(items[1])) + delim
}

func wrapInline(content, delim string) string {
	if content == "" {
		return ""
	}
	// Delimiters hug the text; leading or trailing spaces move outside.
	trimmed := strings.TrimLeft(content, " ")
	leading := content[:len(content)-len(trimmed)]
	trailing := ""
	if body := strings.TrimRight(trimmed, " "); body != trimmed {
		trailing = trimmed[len(body):]
		trimmed = body
	}
	if trimmed == "" {
		return content
	}
	return leading + delim + trimmed + delim + trailing
}
