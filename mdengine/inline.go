package mdengine

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

func (s *state) convertInlineChildren(parent ast.Node) []pandoc.Token {
	var inlines []pandoc.Token
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		inlines = append(inlines, s.convertInline(child)...)
	}
	return inlines
}

func (s *state) convertInline(node ast.Node) []pandoc.Token {
	switch typed := node.(type) {
	case *ast.Text:
		inlines := pandoc.TextInlines(string(typed.Segment.Value(s.source)))
		if typed.HardLineBreak() {
			inlines = append(inlines, pandoc.Token{T: "LineBreak"})
		} else if typed.SoftLineBreak() {
			inlines = append(inlines, pandoc.Token{T: "SoftBreak"})
		}
		return inlines

	case *ast.String:
		return pandoc.TextInlines(string(typed.Value))

	case *ast.Emphasis:
		tag := "Emph"
		if typed.Level >= 2 {
			tag = "Strong"
		}
		return []pandoc.Token{{T: tag, C: s.convertInlineChildren(typed)}}

	case *extast.Strikethrough:
		return []pandoc.Token{{T: "Strikeout", C: s.convertInlineChildren(typed)}}

	case *ast.CodeSpan:
		return []pandoc.Token{{
			T: "Code",
			C: []any{emptyAttr(), string(typed.Text(s.source))},
		}}

	case *ast.Link:
		target := []any{string(typed.Destination), string(typed.Title)}
		return []pandoc.Token{{
			T: "Link",
			C: []any{emptyAttr(), s.convertInlineChildren(typed), target},
		}}

	case *ast.AutoLink:
		url := string(typed.URL(s.source))
		label := string(typed.Label(s.source))
		if typed.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
			url = "mailto:" + url
		}
		return []pandoc.Token{{
			T: "Link",
			C: []any{emptyAttr(), []any{pandoc.Token{T: "Str", C: label}}, []any{url, ""}},
		}}

	case *ast.Image:
		target := []any{string(typed.Destination), string(typed.Title)}
		return []pandoc.Token{{
			T: "Image",
			C: []any{emptyAttr(), s.convertInlineChildren(typed), target},
		}}

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < typed.Segments.Len(); i++ {
			segment := typed.Segments.At(i)
			sb.Write(segment.Value(s.source))
		}
		return []pandoc.Token{{T: "RawInline", C: []any{"html", sb.String()}}}

	case *extast.TaskCheckBox:
		// The space after the checkbox stays in the following text node.
		box := "[ ]"
		if typed.IsChecked {
			box = "[x]"
		}
		return []pandoc.Token{{T: "Str", C: box}}

	default:
		text := string(node.Text(s.source))
		if text == "" {
			return nil
		}
		return pandoc.TextInlines(text)
	}
}
