package editor

import (
	"fmt"
	"strings"

	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

// Writer emits the token run for one document node type.
type Writer func(ctx WriteContext, node Node) []pandoc.Token

// MarkWriter wraps an inline run carrying the mark into tokens. The
// run arrives with the handled mark already stripped; implementations
// usually recurse with ctx.WriteInlines and wrap the result.
type MarkWriter func(ctx WriteContext, mark Mark, run []Node) []pandoc.Token

// WriteContext exposes the running conversion to writer functions.
type WriteContext struct {
	writer *writer
}

// WriteBlocks converts document nodes to block tokens.
func (c WriteContext) WriteBlocks(nodes []Node) []pandoc.Token {
	return c.writer.writeBlocks(nodes)
}

// WriteInlines converts inline document nodes to inline tokens.
func (c WriteContext) WriteInlines(nodes []Node) []pandoc.Token {
	return c.writer.writeInlines(nodes)
}

// Warn records a non-fatal conversion problem.
func (c WriteContext) Warn(warningType WarningType, name, message string) {
	c.writer.addWarning(warningType, name, message)
}

type writer struct {
	writers     map[string]Writer
	markWriters map[string]MarkWriter
	warnings    []Warning
}

func (w *writer) addWarning(warningType WarningType, name, message string) {
	w.warnings = append(w.warnings, Warning{
		Type:    warningType,
		Name:    name,
		Message: message,
	})
}

func (w *writer) writeDocument(doc Doc) pandoc.Document {
	return pandoc.Document{
		PandocAPIVersion: []int{1, 23, 1},
		Meta:             map[string]pandoc.Token{},
		Blocks:           w.writeBlocks(doc.Content),
	}
}

func (w *writer) writeBlocks(nodes []Node) []pandoc.Token {
	blocks := make([]pandoc.Token, 0, len(nodes))
	for _, node := range nodes {
		blocks = append(blocks, w.writeBlock(node)...)
	}
	return blocks
}

func (w *writer) writeBlock(node Node) []pandoc.Token {
	if write, ok := w.writers[node.Type]; ok {
		return write(WriteContext{writer: w}, node)
	}

	w.addWarning(
		WarningUnknownNode,
		node.Type,
		fmt.Sprintf("unsupported document node: %s", node.Type),
	)

	text := flattenText(node)
	if text == "" {
		return nil
	}
	return []pandoc.Token{{T: "Para", C: pandoc.TextInlines(text)}}
}

// writeInlines groups consecutive nodes sharing a leading mark so the
// mark wraps one token run instead of restarting per node.
func (w *writer) writeInlines(nodes []Node) []pandoc.Token {
	var tokens []pandoc.Token
	for idx := 0; idx < len(nodes); {
		node := nodes[idx]
		if len(node.Marks) == 0 {
			tokens = append(tokens, w.writeInlineLeaf(node)...)
			idx++
			continue
		}

		lead := node.Marks[0]
		end := idx
		for end < len(nodes) && len(nodes[end].Marks) > 0 && marksEqual(nodes[end].Marks[0], lead) {
			end++
		}

		run := make([]Node, 0, end-idx)
		for _, member := range nodes[idx:end] {
			stripped := member
			stripped.Marks = member.Marks[1:]
			run = append(run, stripped)
		}

		tokens = append(tokens, w.writeMarkedRun(lead, run)...)
		idx = end
	}
	return tokens
}

func (w *writer) writeMarkedRun(mark Mark, run []Node) []pandoc.Token {
	ctx := WriteContext{writer: w}
	if write, ok := w.markWriters[mark.Type]; ok {
		return write(ctx, mark, run)
	}

	w.addWarning(
		WarningUnknownMark,
		mark.Type,
		fmt.Sprintf("unsupported mark: %s", mark.Type),
	)
	return ctx.WriteInlines(run)
}

func (w *writer) writeInlineLeaf(node Node) []pandoc.Token {
	if write, ok := w.writers[node.Type]; ok {
		return write(WriteContext{writer: w}, node)
	}

	w.addWarning(
		WarningUnknownNode,
		node.Type,
		fmt.Sprintf("unsupported inline document node: %s", node.Type),
	)
	return pandoc.TextInlines(flattenText(node))
}

// defaultWriters returns the built-in node type registry.
func defaultWriters() map[string]Writer {
	return map[string]Writer{
		"text": func(_ WriteContext, node Node) []pandoc.Token {
			return pandoc.TextInlines(node.Text)
		},
		"hard_break": func(WriteContext, Node) []pandoc.Token {
			return []pandoc.Token{{T: "LineBreak"}}
		},
		"image": writeImage,
		"paragraph": func(ctx WriteContext, node Node) []pandoc.Token {
			return []pandoc.Token{{T: "Para", C: ctx.WriteInlines(node.Content)}}
		},
		"heading": writeHeading,
		"blockquote": func(ctx WriteContext, node Node) []pandoc.Token {
			return []pandoc.Token{{T: "BlockQuote", C: ctx.WriteBlocks(node.Content)}}
		},
		"horizontal_rule": func(WriteContext, Node) []pandoc.Token {
			return []pandoc.Token{{T: "HorizontalRule"}}
		},
		"code_block":   writeCodeBlock,
		"bullet_list":  writeBulletList,
		"ordered_list": writeOrderedList,
		"table":        writeTable,
	}
}

// defaultMarkWriters returns the built-in mark type registry.
func defaultMarkWriters() map[string]MarkWriter {
	wrap := func(tag string) MarkWriter {
		return func(ctx WriteContext, _ Mark, run []Node) []pandoc.Token {
			return []pandoc.Token{{T: tag, C: ctx.WriteInlines(run)}}
		}
	}

	return map[string]MarkWriter{
		"em":        wrap("Emph"),
		"strong":    wrap("Strong"),
		"strike":    wrap("Strikeout"),
		"underline": wrap("Underline"),
		"subsup": func(ctx WriteContext, mark Mark, run []Node) []pandoc.Token {
			tag := "Subscript"
			if kind, _ := mark.Attrs["type"].(string); kind == "sup" {
				tag = "Superscript"
			}
			return []pandoc.Token{{T: tag, C: ctx.WriteInlines(run)}}
		},
		// Code tokens carry literal text, so the run flattens instead of
		// recursing.
		"code": func(_ WriteContext, _ Mark, run []Node) []pandoc.Token {
			var sb strings.Builder
			for _, node := range run {
				sb.WriteString(flattenText(node))
			}
			return []pandoc.Token{{T: "Code", C: []any{emptyAttr(), sb.String()}}}
		},
		"link": func(ctx WriteContext, mark Mark, run []Node) []pandoc.Token {
			href, _ := mark.Attrs["href"].(string)
			if href == "" {
				return ctx.WriteInlines(run)
			}
			title, _ := mark.Attrs["title"].(string)
			return []pandoc.Token{{
				T: "Link",
				C: []any{emptyAttr(), ctx.WriteInlines(run), []any{href, title}},
			}}
		},
	}
}

func writeImage(_ WriteContext, node Node) []pandoc.Token {
	src, _ := node.Attrs["src"].(string)
	if src == "" {
		return nil
	}
	alt, _ := node.Attrs["alt"].(string)
	title, _ := node.Attrs["title"].(string)
	return []pandoc.Token{{
		T: "Image",
		C: []any{emptyAttr(), pandoc.TextInlines(alt), []any{src, title}},
	}}
}

func writeHeading(ctx WriteContext, node Node) []pandoc.Token {
	level, ok := node.Attrs["level"].(int)
	if !ok {
		if f, isFloat := node.Attrs["level"].(float64); isFloat {
			level = int(f)
		}
	}
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return []pandoc.Token{{
		T: "Header",
		C: []any{level, emptyAttr(), ctx.WriteInlines(node.Content)},
	}}
}

func writeCodeBlock(_ WriteContext, node Node) []pandoc.Token {
	attr := emptyAttr()
	if language, _ := node.Attrs["language"].(string); language != "" {
		attr = classAttr(language)
	}

	var sb strings.Builder
	for _, child := range node.Content {
		sb.WriteString(child.Text)
	}
	return []pandoc.Token{{T: "CodeBlock", C: []any{attr, sb.String()}}}
}

func writeBulletList(ctx WriteContext, node Node) []pandoc.Token {
	return []pandoc.Token{{T: "BulletList", C: writeListItems(ctx, node.Content)}}
}

func writeOrderedList(ctx WriteContext, node Node) []pandoc.Token {
	start, ok := node.Attrs["order"].(int)
	if !ok {
		if f, isFloat := node.Attrs["order"].(float64); isFloat {
			start = int(f)
		}
	}
	if start < 1 {
		start = 1
	}

	listAttrs := []any{start, pandoc.Token{T: "Decimal"}, pandoc.Token{T: "Period"}}
	return []pandoc.Token{{
		T: "OrderedList",
		C: []any{listAttrs, writeListItems(ctx, node.Content)},
	}}
}

func writeListItems(ctx WriteContext, items []Node) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, ctx.WriteBlocks(item.Content))
	}
	return out
}
