// Package mdengine is the built-in markdown engine: a goldmark-backed
// implementation of the pandoc.Engine contract used when no external
// engine binary is available. It parses GitHub-flavored markdown into
// the engine token tree and renders token trees back to markdown, and
// serves static extension descriptor tables so format negotiation
// works offline.
package mdengine

import (
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

// Engine implements pandoc.Engine on goldmark. The zero value is not
// usable; call New. An Engine is safe for concurrent use: each call
// parses or renders on its own state.
type Engine struct {
	parser goldmark.Markdown
}

var _ pandoc.Engine = (*Engine)(nil)

// New creates the built-in engine.
func New() *Engine {
	return &Engine{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// ListExtensions returns the static descriptor table for the dialect.
func (e *Engine) ListExtensions(ctx context.Context, dialect string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return listExtensions(dialect)
}

// MarkdownToAST parses markdown into the engine token tree. The
// requested format is accepted for interface compatibility; the
// built-in parser always reads GitHub-flavored markdown.
func (e *Engine) MarkdownToAST(ctx context.Context, markdown string, _ string, _ []string) (pandoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return pandoc.Document{}, err
	}

	s := &state{source: []byte(markdown)}
	root := e.parser.Parser().Parse(text.NewReader(s.source))

	return pandoc.Document{
		PandocAPIVersion: []int{1, 23, 1},
		Meta:             map[string]pandoc.Token{},
		Blocks:           s.convertChildren(root),
	}, nil
}

// ASTToMarkdown renders the token tree as markdown.
func (e *Engine) ASTToMarkdown(ctx context.Context, doc pandoc.Document, _ string, _ []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return renderBlocks(doc.Blocks), nil
}

type state struct {
	source []byte
}
