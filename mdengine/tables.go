package mdengine

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

func (s *state) convertTable(table *extast.Table) pandoc.Token {
	var headRows []any
	var bodyRows []any
	columnCount := len(table.Alignments)

	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *extast.TableHeader:
			headRows = append(headRows, s.convertTableRow(row))
		case *extast.TableRow:
			bodyRows = append(bodyRows, s.convertTableRow(row))
		}
	}

	colSpecs := make([]any, columnCount)
	for idx, alignment := range table.Alignments {
		colSpecs[idx] = []any{
			pandoc.Token{T: alignmentTag(alignment)},
			pandoc.Token{T: "ColWidthDefault"},
		}
	}

	caption := []any{nil, []any{}}
	head := []any{emptyAttr(), headRows}
	body := []any{emptyAttr(), 0, []any{}, bodyRows}
	foot := []any{emptyAttr(), []any{}}

	return pandoc.Token{
		T: "Table",
		C: []any{emptyAttr(), caption, colSpecs, head, []any{body}, foot},
	}
}

func (s *state) convertTableRow(row ast.Node) []any {
	var cells []any
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		blocks := []any{pandoc.Token{T: "Plain", C: s.convertInlineChildren(cell)}}
		cells = append(cells, []any{
			emptyAttr(),
			pandoc.Token{T: "AlignDefault"},
			1,
			1,
			blocks,
		})
	}
	return []any{emptyAttr(), cells}
}

// renderTable renders a table token payload as a GFM pipe table.
func (r *renderer) renderTable(items []any) string {
	if len(items) < 6 {
		return ""
	}

	var headerRows [][]string
	if head := payloadItems(items[3]); len(head) >= 2 {
		for _, row := range payloadItems(head[1]) {
			headerRows = append(headerRows, r.renderTableRow(row))
		}
	}

	var bodyRows [][]string
	for _, body := range payloadItems(items[4]) {
		parts := payloadItems(body)
		if len(parts) < 4 {
			continue
		}
		for _, row := range payloadItems(parts[2]) {
			bodyRows = append(bodyRows, r.renderTableRow(row))
		}
		for _, row := range payloadItems(parts[3]) {
			bodyRows = append(bodyRows, r.renderTableRow(row))
		}
	}
	if foot := payloadItems(items[5]); len(foot) >= 2 {
		for _, row := range payloadItems(foot[1]) {
			bodyRows = append(bodyRows, r.renderTableRow(row))
		}
	}

	columns := 0
	for _, row := range append(append([][]string{}, headerRows...), bodyRows...) {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if columns == 0 {
		return ""
	}

	// Pipe tables need exactly one header row; an empty one stands in.
	header := make([]string, columns)
	if len(headerRows) > 0 {
		copy(header, headerRows[0])
		bodyRows = append(headerRows[1:], bodyRows...)
	}

	var sb strings.Builder
	writePipeRow(&sb, header, columns)
	separator := make([]string, columns)
	for idx := range separator {
		separator[idx] = "---"
	}
	writePipeRow(&sb, separator, columns)
	for _, row := range bodyRows {
		writePipeRow(&sb, row, columns)
	}
	return sb.String() + "\n"
}

func (r *renderer) renderTableRow(row any) []string {
	parts := payloadItems(row)
	if len(parts) < 2 {
		return nil
	}
	var cells []string
	for _, cell := range payloadItems(parts[1]) {
		cellParts := payloadItems(cell)
		if len(cellParts) < 5 {
			cells = append(cells, "")
			continue
		}
		content := r.renderChildren(tokensFrom(cellParts[4]))
		content = strings.TrimRight(content, "\n")
		content = strings.ReplaceAll(content, "\n\n", "<br>")
		content = strings.ReplaceAll(content, "\n", " ")
		content = strings.ReplaceAll(content, "|", "\\|")
		cells = append(cells, content)
	}
	return cells
}

func writePipeRow(sb *strings.Builder, cells []string, columns int) {
	sb.WriteString("|")
	for idx := 0; idx < columns; idx++ {
		cell := ""
		if idx < len(cells) {
			cell = cells[idx]
		}
		sb.WriteString(" " + cell + " |")
	}
	sb.WriteString("\n")
}

func alignmentTag(alignment extast.Alignment) string {
	switch alignment {
	case extast.AlignLeft:
		return "AlignLeft"
	case extast.AlignCenter:
		return "AlignCenter"
	case extast.AlignRight:
		return "AlignRight"
	default:
		return "AlignDefault"
	}
}
