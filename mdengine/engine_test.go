package mdengine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/pandoc-prose-bridge/format"
	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

func parseMarkdown(t *testing.T, markdown string) pandoc.Document {
	t.Helper()
	doc, err := New().MarkdownToAST(context.Background(), markdown, "gfm", nil)
	require.NoError(t, err)
	return doc
}

func renderMarkdown(t *testing.T, doc pandoc.Document) string {
	t.Helper()
	out, err := New().ASTToMarkdown(context.Background(), doc, "gfm", nil)
	require.NoError(t, err)
	return out
}

func tags(blocks []pandoc.Token) []string {
	out := make([]string, len(blocks))
	for idx, block := range blocks {
		out[idx] = block.T
	}
	return out
}

func TestMarkdownToASTBasicBlocks(t *testing.T) {
	doc := parseMarkdown(t, "## Section Two\n\nSome *styled* text.\n\n---\n")

	require.Equal(t, []string{"Header", "Para", "HorizontalRule"}, tags(doc.Blocks))
	require.Equal(t, []int{1, 23, 1}, doc.PandocAPIVersion)

	header := payloadItems(doc.Blocks[0].C)
	require.Len(t, header, 3)
	assert.Equal(t, 2, intFrom(header[0], 0))
	assert.Equal(t, "Section Two", pandoc.CollectText(tokensFrom(header[2])))

	para := tokensFrom(doc.Blocks[1].C)
	assert.Equal(t, "Some styled text.", pandoc.CollectText(para))

	var sawEmph bool
	pandoc.Walk(para, func(token pandoc.Token) {
		if token.T == "Emph" {
			sawEmph = true
		}
	})
	assert.True(t, sawEmph)
}

func TestMarkdownToASTCodeBlockAndLanguage(t *testing.T) {
	doc := parseMarkdown(t, "```go\nfmt.Println(\"hi\")\n```\n")

	require.Equal(t, []string{"CodeBlock"}, tags(doc.Blocks))
	items := payloadItems(doc.Blocks[0].C)
	require.Len(t, items, 2)
	assert.Equal(t, "go", firstClass(items[0]))
	assert.Equal(t, "fmt.Println(\"hi\")", items[1])
}

func TestMarkdownToASTLists(t *testing.T) {
	doc := parseMarkdown(t, "3. first\n4. second\n\n- one\n- two\n")

	require.Equal(t, []string{"OrderedList", "BulletList"}, tags(doc.Blocks))

	ordered := payloadItems(doc.Blocks[0].C)
	require.Len(t, ordered, 2)
	listAttrs := payloadItems(ordered[0])
	require.NotEmpty(t, listAttrs)
	assert.Equal(t, 3, intFrom(listAttrs[0], 0))
	assert.Len(t, payloadItems(ordered[1]), 2)

	bullets := payloadItems(doc.Blocks[1].C)
	require.Len(t, bullets, 2)
	assert.Equal(t, "one", pandoc.CollectText(tokensFrom(bullets[0])))
}

func TestMarkdownToASTLinksAndBreaks(t *testing.T) {
	doc := parseMarkdown(t, "see [docs](https://example.com \"Docs\") now\nnext line\n")

	require.Equal(t, []string{"Para"}, tags(doc.Blocks))
	inlines := tokensFrom(doc.Blocks[0].C)

	var link pandoc.Token
	softBreaks := 0
	pandoc.Walk(inlines, func(token pandoc.Token) {
		switch token.T {
		case "Link":
			link = token
		case "SoftBreak":
			softBreaks++
		}
	})
	require.Equal(t, "Link", link.T)
	assert.Equal(t, 1, softBreaks)

	items := payloadItems(link.C)
	require.Len(t, items, 3)
	target := payloadItems(items[2])
	require.Len(t, target, 2)
	assert.Equal(t, "https://example.com", target[0])
	assert.Equal(t, "Docs", target[1])
	assert.Equal(t, "docs", pandoc.CollectText(tokensFrom(items[1])))
}

func TestMarkdownToASTStrikethroughAndTask(t *testing.T) {
	doc := parseMarkdown(t, "- [x] ~~done~~ item\n")

	text := pandoc.CollectText(doc.Blocks)
	assert.Equal(t, "[x] done item", text)

	var sawStrikeout bool
	pandoc.Walk(doc.Blocks, func(token pandoc.Token) {
		if token.T == "Strikeout" {
			sawStrikeout = true
		}
	})
	assert.True(t, sawStrikeout)
}

func TestMarkdownToASTPipeTable(t *testing.T) {
	doc := parseMarkdown(t, "| Name | Role |\n|------|------|\n| Ada  | Eng  |\n")

	require.Equal(t, []string{"Table"}, tags(doc.Blocks))
	items := payloadItems(doc.Blocks[0].C)
	require.Len(t, items, 6)

	head := payloadItems(items[3])
	require.Len(t, head, 2)
	require.Len(t, payloadItems(head[1]), 1)

	bodies := payloadItems(items[4])
	require.Len(t, bodies, 1)
	body := payloadItems(bodies[0])
	require.Len(t, body, 4)
	assert.Len(t, payloadItems(body[3]), 1)

	assert.Equal(t, "NameRoleAdaEng", pandoc.CollectText(doc.Blocks))
}

func TestASTToMarkdownRendering(t *testing.T) {
	tests := []struct {
		name   string
		blocks []pandoc.Token
		want   string
	}{
		{
			name: "heading and paragraph",
			blocks: []pandoc.Token{
				{T: "Header", C: []any{2, emptyAttr(), pandoc.TextInlines("A Title")}},
				{T: "Para", C: pandoc.TextInlines("Plain text.")},
			},
			want: "## A Title\n\nPlain text.\n",
		},
		{
			name: "emphasis marks",
			blocks: []pandoc.Token{
				{T: "Para", C: []any{
					pandoc.Token{T: "Emph", C: pandoc.TextInlines("soft")},
					pandoc.Token{T: "Space"},
					pandoc.Token{T: "Strong", C: pandoc.TextInlines("loud")},
					pandoc.Token{T: "Space"},
					pandoc.Token{T: "Strikeout", C: pandoc.TextInlines("gone")},
				}},
			},
			want: "*soft* **loud** ~~gone~~\n",
		},
		{
			name: "code block with fence escalation",
			blocks: []pandoc.Token{
				{T: "CodeBlock", C: []any{classAttr("md"), "```\ninner\n```"}},
			},
			want: "````md\n```\ninner\n```\n````\n",
		},
		{
			name: "blockquote",
			blocks: []pandoc.Token{
				{T: "BlockQuote", C: []pandoc.Token{
					{T: "Para", C: pandoc.TextInlines("quoted line")},
				}},
			},
			want: "> quoted line\n",
		},
		{
			name: "nested bullet list",
			blocks: []pandoc.Token{
				{T: "BulletList", C: []any{
					[]pandoc.Token{
						{T: "Plain", C: pandoc.TextInlines("outer")},
						{T: "BulletList", C: []any{
							[]pandoc.Token{{T: "Plain", C: pandoc.TextInlines("inner")}},
						}},
					},
				}},
			},
			want: "- outer\n  - inner\n",
		},
		{
			name: "ordered list start",
			blocks: []pandoc.Token{
				{T: "OrderedList", C: []any{
					[]any{5, pandoc.Token{T: "Decimal"}, pandoc.Token{T: "Period"}},
					[]any{
						[]pandoc.Token{{T: "Plain", C: pandoc.TextInlines("five")}},
						[]pandoc.Token{{T: "Plain", C: pandoc.TextInlines("six")}},
					},
				}},
			},
			want: "5. five\n6. six\n",
		},
		{
			name: "link and image",
			blocks: []pandoc.Token{
				{T: "Para", C: []any{
					pandoc.Token{T: "Link", C: []any{emptyAttr(), pandoc.TextInlines("docs"), []any{"https://example.com", ""}}},
					pandoc.Token{T: "Space"},
					pandoc.Token{T: "Image", C: []any{emptyAttr(), pandoc.TextInlines("alt"), []any{"pic.png", "Title"}}},
				}},
			},
			want: "[docs](https://example.com) ![alt](pic.png \"Title\")\n",
		},
		{
			name: "underline and subsup html",
			blocks: []pandoc.Token{
				{T: "Para", C: []any{
					pandoc.Token{T: "Underline", C: pandoc.TextInlines("u")},
					pandoc.Token{T: "Subscript", C: pandoc.TextInlines("2")},
					pandoc.Token{T: "Superscript", C: pandoc.TextInlines("n")},
				}},
			},
			want: "<u>u</u><sub>2</sub><sup>n</sup>\n",
		},
		{
			name: "line block",
			blocks: []pandoc.Token{
				{T: "LineBlock", C: []any{
					pandoc.TextInlines("first line"),
					pandoc.TextInlines("second line"),
				}},
			},
			want: "| first line\n| second line\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, renderMarkdown(t, pandoc.Document{Blocks: tc.blocks}))
		})
	}
}

func TestRenderPipeTable(t *testing.T) {
	doc := parseMarkdown(t, "| Name | Role |\n|------|------|\n| Ada  | Eng  |\n| Bob  | Ops  |\n")
	out := renderMarkdown(t, doc)

	want := "| Name | Role |\n| --- | --- |\n| Ada | Eng |\n| Bob | Ops |\n"
	assert.Equal(t, want, out)
}

func TestMarkdownRoundTrip(t *testing.T) {
	source := strings.Join([]string{
		"# Notes",
		"",
		"Plain with *em* and **strong** and `code`.",
		"",
		"> a quote",
		"",
		"- one",
		"- two",
		"",
		"```go",
		"x := 1",
		"```",
	}, "\n") + "\n"

	first := parseMarkdown(t, source)
	rendered := renderMarkdown(t, first)
	second := parseMarkdown(t, rendered)

	assert.Equal(t, pandoc.CollectText(first.Blocks), pandoc.CollectText(second.Blocks))
	assert.Equal(t, tags(first.Blocks), tags(second.Blocks))
}

func TestListExtensionsDialects(t *testing.T) {
	engine := New()

	descriptors, err := engine.ListExtensions(context.Background(), "gfm")
	require.NoError(t, err)
	parsed := format.ParseDescriptors(descriptors)
	assert.NotEmpty(t, parsed)

	_, err = engine.ListExtensions(context.Background(), "docbook")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestEngineSatisfiesResolver(t *testing.T) {
	resolved, err := format.Resolve(context.Background(), New(), "gfm+footnotes")
	require.NoError(t, err)
	assert.Equal(t, "gfm", resolved.BaseName)
	assert.True(t, resolved.Extensions["footnotes"])
	assert.Empty(t, resolved.Warnings.InvalidOptions)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := New()
	_, err := engine.MarkdownToAST(ctx, "hello", "gfm", nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = engine.ASTToMarkdown(ctx, pandoc.Document{}, "gfm", nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = engine.ListExtensions(ctx, "gfm")
	assert.ErrorIs(t, err, context.Canceled)
}
