package pandoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the pandoc executable looked up on PATH when no
// explicit path is configured.
const DefaultBinary = "pandoc"

// CLIEngine implements Engine by spawning the pandoc binary. Each call
// runs a fresh process, so a CLIEngine is safe for concurrent use.
type CLIEngine struct {
	path string
}

// NewCLIEngine creates an engine backed by the pandoc binary at path.
// An empty path falls back to looking up "pandoc" on PATH.
func NewCLIEngine(path string) *CLIEngine {
	if path == "" {
		path = DefaultBinary
	}
	return &CLIEngine{path: path}
}

// ListExtensions shells out to pandoc --list-extensions for the
// dialect and returns its raw descriptor output.
func (e *CLIEngine) ListExtensions(ctx context.Context, dialect string) (string, error) {
	out, err := e.run(ctx, nil, "--list-extensions="+dialect)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// MarkdownToAST parses markdown text via pandoc's JSON writer.
func (e *CLIEngine) MarkdownToAST(ctx context.Context, text string, format string, opts []string) (Document, error) {
	args := append([]string{"-f", format, "-t", "json"}, opts...)
	out, err := e.run(ctx, []byte(text), args...)
	if err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(out, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse engine AST JSON: %w", err)
	}
	return doc, nil
}

// ASTToMarkdown renders a document tree via pandoc's JSON reader.
func (e *CLIEngine) ASTToMarkdown(ctx context.Context, doc Document, format string, opts []string) (string, error) {
	payload, err := json.Marshal(docForWire(doc))
	if err != nil {
		return "", fmt.Errorf("failed to marshal engine AST JSON: %w", err)
	}

	args := append([]string{"-f", "json", "-t", format}, opts...)
	out, err := e.run(ctx, payload, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (e *CLIEngine) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.path, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return nil, fmt.Errorf("engine command %q failed: %w: %s", strings.Join(args, " "), err, detail)
		}
		return nil, fmt.Errorf("engine command %q failed: %w", strings.Join(args, " "), err)
	}
	return stdout.Bytes(), nil
}

// docForWire normalizes nil slices and maps so the JSON reader always
// sees the fields pandoc requires.
func docForWire(doc Document) Document {
	if doc.PandocAPIVersion == nil {
		doc.PandocAPIVersion = []int{1, 23, 1}
	}
	if doc.Meta == nil {
		doc.Meta = map[string]Token{}
	}
	if doc.Blocks == nil {
		doc.Blocks = []Token{}
	}
	return doc
}
