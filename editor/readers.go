package editor

import (
	"fmt"
	"strings"

	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

// defaultReaders returns the built-in token tag registry. Callers
// extend or override individual entries through Config.Readers.
func defaultReaders() map[string]Reader {
	return map[string]Reader{
		// Blocks.
		"Para":  {Node: "paragraph", InlineContent: true},
		"Plain": {Node: "paragraph", InlineContent: true},
		"Header": {
			Node:          "heading",
			InlineContent: true,
			Attrs: func(tok pandoc.Token) map[string]any {
				level := intAt(tok.C, 0)
				if level < 1 {
					level = 1
				}
				if level > 6 {
					level = 6
				}
				return map[string]any{"level": level}
			},
			Content: func(tok pandoc.Token) any { return itemAt(tok.C, 2) },
		},
		"BlockQuote":     {Node: "blockquote"},
		"HorizontalRule": {Node: "horizontal_rule"},
		"CodeBlock":      {Handle: readCodeBlock},
		"BulletList":     {Handle: readBulletList},
		"OrderedList":    {Handle: readOrderedList},
		"LineBlock":      {Handle: readLineBlock},
		"DefinitionList": {Handle: readDefinitionList},
		"Div":            {Handle: readDiv},
		"Figure":         {Handle: readFigure},
		"RawBlock":       {Handle: readRawBlock},
		"Table":          {Handle: readTable},

		// Inline leaves.
		"Str":       {Handle: readStr},
		"Space":     {Handle: readLiteral(" ")},
		"SoftBreak": {Handle: readLiteral(" ")},
		"LineBreak": {Handle: readHardBreak},
		"Code":      {Handle: readCode},
		"Math":      {Handle: readMath},
		"Image":     {Handle: readImage},
		"RawInline": {Handle: readRawInline},
		"Note":      {Handle: readNote},

		// Inline marks.
		"Emph":      {Mark: "em"},
		"Strong":    {Mark: "strong"},
		"Strikeout": {Mark: "strike"},
		"Underline": {Mark: "underline"},
		"Subscript": {
			Mark:      "subsup",
			MarkAttrs: func(pandoc.Token) map[string]any { return map[string]any{"type": "sub"} },
		},
		"Superscript": {
			Mark:      "subsup",
			MarkAttrs: func(pandoc.Token) map[string]any { return map[string]any{"type": "sup"} },
		},
		"Link": {
			Mark:    "link",
			Content: func(tok pandoc.Token) any { return itemAt(tok.C, 1) },
			MarkAttrs: func(tok pandoc.Token) map[string]any {
				target := itemAt(tok.C, 2)
				href := strings.TrimSpace(stringAt(target, 0))
				if href == "" {
					return nil
				}
				attrs := map[string]any{"href": href}
				if title := strings.TrimSpace(stringAt(target, 1)); title != "" {
					attrs["title"] = title
				}
				return attrs
			},
		},
		"SmallCaps": {Handle: readUnwrapInlines},
		"Span":      {Handle: readSpan},
		"Quoted":    {Handle: readQuoted},
		"Cite":      {Handle: readCite},
	}
}

func readStr(ctx ReadContext, tok pandoc.Token) []Node {
	text, _ := tok.C.(string)
	if text == "" {
		return nil
	}
	return []Node{newTextNode(text, ctx.Marks())}
}

func readLiteral(text string) func(ReadContext, pandoc.Token) []Node {
	return func(ctx ReadContext, _ pandoc.Token) []Node {
		return []Node{newTextNode(text, ctx.Marks())}
	}
}

func readHardBreak(ReadContext, pandoc.Token) []Node {
	return []Node{{Type: "hard_break"}}
}

func readCode(ctx ReadContext, tok pandoc.Token) []Node {
	text := stringAt(tok.C, 1)
	if text == "" {
		return nil
	}
	marks := append(ctx.Marks(), Mark{Type: "code"})
	return []Node{newTextNode(text, marks)}
}

// Math renders as code text; the editor model has no math node.
func readMath(ctx ReadContext, tok pandoc.Token) []Node {
	text := stringAt(tok.C, 1)
	if text == "" {
		return nil
	}
	marks := append(ctx.Marks(), Mark{Type: "code"})
	return []Node{newTextNode(text, marks)}
}

func readImage(ctx ReadContext, tok pandoc.Token) []Node {
	target := itemAt(tok.C, 2)
	src := strings.TrimSpace(stringAt(target, 0))
	if src == "" {
		ctx.Warn(WarningDroppedFeature, tok.T, "image without a source dropped")
		return ctx.ReadInlines(itemAt(tok.C, 1))
	}

	attrs := map[string]any{"src": src}
	if alt := pandoc.CollectText(tokensAt(tok.C, 1)); alt != "" {
		attrs["alt"] = alt
	}
	if title := strings.TrimSpace(stringAt(target, 1)); title != "" {
		attrs["title"] = title
	}
	return []Node{{Type: "image", Attrs: attrs}}
}

func readNote(ctx ReadContext, tok pandoc.Token) []Node {
	ctx.Warn(WarningDroppedFeature, tok.T, "footnote flattened to inline text")

	text := pandoc.CollectText(tokensIn(tok.C))
	if text == "" {
		return nil
	}
	return []Node{newTextNode(" ("+text+")", ctx.Marks())}
}

func readUnwrapInlines(ctx ReadContext, tok pandoc.Token) []Node {
	return ctx.ReadInlines(tok.C)
}

func readSpan(ctx ReadContext, tok pandoc.Token) []Node {
	return ctx.ReadInlines(itemAt(tok.C, 1))
}

func readQuoted(ctx ReadContext, tok pandoc.Token) []Node {
	quote := `"`
	if kind, ok := tokenAt(tok.C, 0); ok && kind.T == "SingleQuote" {
		quote = "'"
	}

	content := []Node{newTextNode(quote, ctx.Marks())}
	for _, node := range ctx.ReadInlines(itemAt(tok.C, 1)) {
		content = appendInlineNode(content, node)
	}
	return appendInlineNode(content, newTextNode(quote, ctx.Marks()))
}

func readCite(ctx ReadContext, tok pandoc.Token) []Node {
	return ctx.ReadInlines(itemAt(tok.C, 1))
}

func readCodeBlock(_ ReadContext, tok pandoc.Token) []Node {
	text := strings.TrimRight(stringAt(tok.C, 1), "\n")

	node := Node{Type: "code_block"}
	if classes := attrAt(tok.C, 0).Classes; len(classes) > 0 {
		node.Attrs = map[string]any{"language": classes[0]}
	}
	if text != "" {
		node.Content = []Node{newTextNode(text, nil)}
	}
	return []Node{node}
}

func readBulletList(ctx ReadContext, tok pandoc.Token) []Node {
	return []Node{{Type: "bullet_list", Content: readListItems(ctx, tok.C)}}
}

func readOrderedList(ctx ReadContext, tok pandoc.Token) []Node {
	start := intAt(itemAt(tok.C, 0), 0)
	if start < 1 {
		start = 1
	}
	return []Node{{
		Type:    "ordered_list",
		Attrs:   map[string]any{"order": start},
		Content: readListItems(ctx, itemAt(tok.C, 1)),
	}}
}

func readListItems(ctx ReadContext, payload any) []Node {
	var items []Node
	for _, item := range payloadItems(payload) {
		items = append(items, Node{
			Type:    "list_item",
			Content: ctx.ReadBlocks(tokensIn(item)),
		})
	}
	return items
}

func readLineBlock(ctx ReadContext, tok pandoc.Token) []Node {
	var content []Node
	for idx, line := range payloadItems(tok.C) {
		if idx > 0 {
			content = append(content, Node{Type: "hard_break"})
		}
		for _, node := range ctx.ReadInlines(line) {
			content = appendInlineNode(content, node)
		}
	}
	return []Node{{Type: "paragraph", Content: content}}
}

// Definition lists flatten to a strong term paragraph followed by the
// definition blocks.
func readDefinitionList(ctx ReadContext, tok pandoc.Token) []Node {
	var nodes []Node
	for _, entry := range payloadItems(tok.C) {
		term := pandoc.CollectText(tokensAt(entry, 0))
		if term != "" {
			nodes = append(nodes, Node{
				Type:    "paragraph",
				Content: []Node{newTextNode(term, []Mark{{Type: "strong"}})},
			})
		}
		for _, definition := range payloadItems(itemAt(entry, 1)) {
			nodes = append(nodes, ctx.ReadBlocks(tokensIn(definition))...)
		}
	}
	return nodes
}

func readDiv(ctx ReadContext, tok pandoc.Token) []Node {
	return ctx.ReadBlocks(tokensAt(tok.C, 1))
}

func readFigure(ctx ReadContext, tok pandoc.Token) []Node {
	return ctx.ReadBlocks(tokensAt(tok.C, 2))
}

func readRawBlock(ctx ReadContext, tok pandoc.Token) []Node {
	syntax := stringAt(tok.C, 0)
	raw := stringAt(tok.C, 1)
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	if syntax != "html" {
		ctx.Warn(
			WarningDroppedFeature,
			tok.T,
			fmt.Sprintf("raw %s block dropped", syntax),
		)
		return nil
	}
	return readHTMLBlock(ctx, raw)
}

func readRawInline(ctx ReadContext, tok pandoc.Token) []Node {
	syntax := stringAt(tok.C, 0)
	raw := stringAt(tok.C, 1)
	if raw == "" {
		return nil
	}

	if syntax != "html" {
		ctx.Warn(
			WarningDroppedFeature,
			tok.T,
			fmt.Sprintf("raw %s inline dropped", syntax),
		)
		return nil
	}
	return readHTMLInline(ctx, raw)
}
