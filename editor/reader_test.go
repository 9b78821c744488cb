package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

func parseBlocks(t *testing.T, input string) []pandoc.Token {
	t.Helper()

	var blocks []pandoc.Token
	require.NoError(t, json.Unmarshal([]byte(input), &blocks))
	return blocks
}

func docFromBlocks(blocks []pandoc.Token) pandoc.Document {
	return pandoc.Document{
		PandocAPIVersion: []int{1, 23, 1},
		Meta:             map[string]pandoc.Token{},
		Blocks:           blocks,
	}
}

func TestFromASTBasicBlocks(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"Header","c":[2,["section",[],[]],[{"t":"Str","c":"Section"},{"t":"Space"},{"t":"Str","c":"One"}]]},
		{"t":"Para","c":[{"t":"Str","c":"plain"},{"t":"Space"},{"t":"Emph","c":[{"t":"Str","c":"styled"}]}]},
		{"t":"HorizontalRule"}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))
	require.Empty(t, warnings)

	want := Doc{Type: "doc", Content: []Node{
		{
			Type:  "heading",
			Attrs: map[string]any{"level": 2},
			Content: []Node{
				{Type: "text", Text: "Section One"},
			},
		},
		{
			Type: "paragraph",
			Content: []Node{
				{Type: "text", Text: "plain "},
				{Type: "text", Text: "styled", Marks: []Mark{{Type: "em"}}},
			},
		},
		{Type: "horizontal_rule"},
	}}
	assert.Equal(t, want, doc)
}

func TestFromASTLinkAndCode(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"Para","c":[
			{"t":"Link","c":[["",[],[]],[{"t":"Str","c":"site"}],["https://example.com","Home"]]},
			{"t":"Space"},
			{"t":"Code","c":[["",[],[]],"x := 1"]}
		]}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))
	require.Empty(t, warnings)

	require.Len(t, doc.Content, 1)
	content := doc.Content[0].Content
	require.Len(t, content, 3)

	assert.Equal(t, "site", content[0].Text)
	require.Len(t, content[0].Marks, 1)
	assert.Equal(t, "link", content[0].Marks[0].Type)
	assert.Equal(t, "https://example.com", content[0].Marks[0].Attrs["href"])
	assert.Equal(t, "Home", content[0].Marks[0].Attrs["title"])

	assert.Equal(t, "x := 1", content[2].Text)
	require.Len(t, content[2].Marks, 1)
	assert.Equal(t, "code", content[2].Marks[0].Type)
}

func TestFromASTLinkWithoutDestinationKeepsText(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"Para","c":[{"t":"Link","c":[["",[],[]],[{"t":"Str","c":"bare"}],["",""]]}]}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))
	require.Empty(t, warnings)

	require.Len(t, doc.Content, 1)
	require.Len(t, doc.Content[0].Content, 1)
	assert.Equal(t, Node{Type: "text", Text: "bare"}, doc.Content[0].Content[0])
}

func TestFromASTCodeBlock(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"CodeBlock","c":[["",["go"],[]],"fmt.Println(\"hi\")\n"]}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))
	require.Empty(t, warnings)

	want := Doc{Type: "doc", Content: []Node{{
		Type:    "code_block",
		Attrs:   map[string]any{"language": "go"},
		Content: []Node{{Type: "text", Text: `fmt.Println("hi")`}},
	}}}
	assert.Equal(t, want, doc)
}

func TestFromASTLists(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"BulletList","c":[
			[{"t":"Plain","c":[{"t":"Str","c":"one"}]}],
			[{"t":"Plain","c":[{"t":"Str","c":"two"}]}]
		]},
		{"t":"OrderedList","c":[[3,{"t":"Decimal"},{"t":"Period"}],[
			[{"t":"Plain","c":[{"t":"Str","c":"third"}]}]
		]]}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))
	require.Empty(t, warnings)
	require.Len(t, doc.Content, 2)

	bullets := doc.Content[0]
	assert.Equal(t, "bullet_list", bullets.Type)
	require.Len(t, bullets.Content, 2)
	assert.Equal(t, "list_item", bullets.Content[0].Type)
	assert.Equal(t, "one", flattenText(bullets.Content[0]))

	ordered := doc.Content[1]
	assert.Equal(t, "ordered_list", ordered.Type)
	assert.Equal(t, map[string]any{"order": 3}, ordered.Attrs)
	require.Len(t, ordered.Content, 1)
	assert.Equal(t, "third", flattenText(ordered.Content[0]))
}

func TestFromASTSubSupAndStrikeout(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"Para","c":[
			{"t":"Subscript","c":[{"t":"Str","c":"down"}]},
			{"t":"Superscript","c":[{"t":"Str","c":"up"}]},
			{"t":"Strikeout","c":[{"t":"Str","c":"gone"}]}
		]}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))
	require.Empty(t, warnings)

	content := doc.Content[0].Content
	require.Len(t, content, 3)
	assert.Equal(t, map[string]any{"type": "sub"}, content[0].Marks[0].Attrs)
	assert.Equal(t, map[string]any{"type": "sup"}, content[1].Marks[0].Attrs)
	assert.Equal(t, "strike", content[2].Marks[0].Type)
}

func TestFromASTUnknownBlockTokenDegradesToText(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"ExoticBlock","c":[{"t":"Str","c":"survives"}]}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))

	require.Len(t, warnings, 1)
	assert.Equal(t, WarningUnknownToken, warnings[0].Type)
	assert.Equal(t, "ExoticBlock", warnings[0].Name)

	require.Len(t, doc.Content, 1)
	assert.Equal(t, "paragraph", doc.Content[0].Type)
	assert.Equal(t, "survives", flattenText(doc.Content[0]))
}

func TestFromASTQuoted(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"Para","c":[{"t":"Quoted","c":[{"t":"DoubleQuote"},[{"t":"Str","c":"word"}]]}]}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))
	require.Empty(t, warnings)
	assert.Equal(t, `"word"`, flattenText(doc.Content[0]))
}

func TestFromASTDivAndFigureUnwrap(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"Div","c":[["",["note"],[]],[{"t":"Para","c":[{"t":"Str","c":"inner"}]}]]}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))
	require.Empty(t, warnings)
	require.Len(t, doc.Content, 1)
	assert.Equal(t, "paragraph", doc.Content[0].Type)
	assert.Equal(t, "inner", flattenText(doc.Content[0]))
}

func TestFromASTTable(t *testing.T) {
	blocks := parseBlocks(t, `[
		{"t":"Table","c":[
			["",[],[]],
			[null,[]],
			[[{"t":"AlignDefault"},{"t":"ColWidthDefault"}],[{"t":"AlignDefault"},{"t":"ColWidthDefault"}]],
			[["",[],[]],[
				[["",[],[]],[
					[["",[],[]],{"t":"AlignDefault"},1,1,[{"t":"Plain","c":[{"t":"Str","c":"H1"}]}]],
					[["",[],[]],{"t":"AlignDefault"},1,1,[{"t":"Plain","c":[{"t":"Str","c":"H2"}]}]]
				]]
			]],
			[[["",[],[]],0,[],[
				[["",[],[]],[
					[["",[],[]],{"t":"AlignDefault"},1,1,[{"t":"Plain","c":[{"t":"Str","c":"a"}]}]],
					[["",[],[]],{"t":"AlignDefault"},1,2,[{"t":"Plain","c":[{"t":"Str","c":"b"}]}]]
				]]
			]]],
			[["",[],[]],[]]
		]}
	]`)

	doc, warnings := FromAST(docFromBlocks(blocks))
	require.Empty(t, warnings)

	require.Len(t, doc.Content, 1)
	table := doc.Content[0]
	assert.Equal(t, "table", table.Type)
	require.Len(t, table.Content, 2)

	header := table.Content[0]
	require.Len(t, header.Content, 2)
	assert.Equal(t, "table_header", header.Content[0].Type)
	assert.Equal(t, "H1", flattenText(header.Content[0]))

	body := table.Content[1]
	require.Len(t, body.Content, 2)
	assert.Equal(t, "table_cell", body.Content[0].Type)
	assert.Equal(t, map[string]any{"colspan": 2}, body.Content[1].Attrs)
}

func TestFromASTCustomReaderOverride(t *testing.T) {
	conv := New(Config{
		Readers: map[string]Reader{
			"HorizontalRule": {Node: "divider"},
		},
	})

	doc, warnings := conv.FromAST(docFromBlocks(parseBlocks(t, `[{"t":"HorizontalRule"}]`)))
	require.Empty(t, warnings)
	assert.Equal(t, []Node{{Type: "divider"}}, doc.Content)
}
