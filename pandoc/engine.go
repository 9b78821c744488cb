package pandoc

import "context"

// Engine is the external markdown engine service contract. For a fixed
// dialect ListExtensions must be idempotent and side-effect free.
// Implementations must be safe for concurrent use; every method call is
// independent and carries no shared mutable state.
type Engine interface {
	// ListExtensions returns the engine's extension descriptor text for
	// the dialect: +name/-name tokens, one per line, default
	// enabled/disabled state encoded by the sign.
	ListExtensions(ctx context.Context, dialect string) (string, error)

	// MarkdownToAST parses markdown text in the given format into the
	// engine's document tree.
	MarkdownToAST(ctx context.Context, text string, format string, opts []string) (Document, error)

	// ASTToMarkdown renders the document tree as markdown in the given
	// format.
	ASTToMarkdown(ctx context.Context, doc Document, format string, opts []string) (string, error)
}
