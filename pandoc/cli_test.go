package pandoc

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requirePandoc(t *testing.T) *CLIEngine {
	t.Helper()
	path, err := exec.LookPath(DefaultBinary)
	if err != nil {
		t.Skip("pandoc binary not available")
	}
	return NewCLIEngine(path)
}

func TestCLIEngineListExtensions(t *testing.T) {
	engine := requirePandoc(t)

	out, err := engine.ListExtensions(context.Background(), "gfm")
	require.NoError(t, err)
	assert.Contains(t, out, "pipe_tables")
}

func TestCLIEngineMarkdownRoundTrip(t *testing.T) {
	engine := requirePandoc(t)
	ctx := context.Background()

	doc, err := engine.MarkdownToAST(ctx, "# Hi\n\nSome *text*.\n", "gfm", nil)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Blocks)
	assert.Equal(t, "Header", doc.Blocks[0].T)

	markdown, err := engine.ASTToMarkdown(ctx, doc, "gfm", nil)
	require.NoError(t, err)
	assert.Contains(t, markdown, "# Hi")
}

func TestCLIEngineCommandFailure(t *testing.T) {
	engine := requirePandoc(t)

	_, err := engine.ListExtensions(context.Background(), "not_a_dialect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
}

func TestCLIEngineContextCancellation(t *testing.T) {
	engine := requirePandoc(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.MarkdownToAST(ctx, "text", "gfm", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
