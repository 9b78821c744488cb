package mdengine

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

func (s *state) convertChildren(parent ast.Node) []pandoc.Token {
	var blocks []pandoc.Token
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, s.convertBlock(child)...)
	}
	return blocks
}

func (s *state) convertBlock(node ast.Node) []pandoc.Token {
	switch typed := node.(type) {
	case *ast.Paragraph:
		return []pandoc.Token{{T: "Para", C: s.convertInlineChildren(typed)}}

	case *ast.TextBlock:
		return []pandoc.Token{{T: "Plain", C: s.convertInlineChildren(typed)}}

	case *ast.Heading:
		return []pandoc.Token{{
			T: "Header",
			C: []any{typed.Level, emptyAttr(), s.convertInlineChildren(typed)},
		}}

	case *ast.Blockquote:
		return []pandoc.Token{{T: "BlockQuote", C: s.convertChildren(typed)}}

	case *ast.ThematicBreak:
		return []pandoc.Token{{T: "HorizontalRule"}}

	case *ast.FencedCodeBlock:
		attr := emptyAttr()
		if language := string(typed.Language(s.source)); language != "" {
			attr = classAttr(language)
		}
		return []pandoc.Token{{
			T: "CodeBlock",
			C: []any{attr, strings.TrimRight(s.nodeLines(typed), "\n")},
		}}

	case *ast.CodeBlock:
		return []pandoc.Token{{
			T: "CodeBlock",
			C: []any{emptyAttr(), strings.TrimRight(s.nodeLines(typed), "\n")},
		}}

	case *ast.List:
		return []pandoc.Token{s.convertList(typed)}

	case *ast.HTMLBlock:
		raw := strings.TrimRight(s.nodeLines(typed), "\n")
		if typed.HasClosure() {
			raw += "\n" + string(typed.ClosureLine.Value(s.source))
			raw = strings.TrimRight(raw, "\n")
		}
		if raw == "" {
			return nil
		}
		return []pandoc.Token{{T: "RawBlock", C: []any{"html", raw}}}

	case *extast.Table:
		return []pandoc.Token{s.convertTable(typed)}

	default:
		// Unrecognized block structure degrades to its plain text.
		text := strings.TrimSpace(string(node.Text(s.source)))
		if text == "" {
			return nil
		}
		return []pandoc.Token{{T: "Para", C: pandoc.TextInlines(text)}}
	}
}

func (s *state) convertList(list *ast.List) pandoc.Token {
	items := make([]any, 0, list.ChildCount())
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		items = append(items, s.convertChildren(item))
	}

	if !list.IsOrdered() {
		return pandoc.Token{T: "BulletList", C: items}
	}

	start := list.Start
	if start < 1 {
		start = 1
	}
	listAttrs := []any{start, pandoc.Token{T: "Decimal"}, pandoc.Token{T: "Period"}}
	return pandoc.Token{T: "OrderedList", C: []any{listAttrs, items}}
}

func (s *state) nodeLines(node ast.Node) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		sb.Write(segment.Value(s.source))
	}
	return sb.String()
}

func emptyAttr() []any {
	return []any{"", []any{}, []any{}}
}

func classAttr(classes ...string) []any {
	items := make([]any, len(classes))
	for idx, class := range classes {
		items[idx] = class
	}
	return []any{"", items, []any{}}
}
