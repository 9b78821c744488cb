package editor

import "github.com/rgonek/pandoc-prose-bridge/pandoc"

// Table token payload order: attr, caption, column specs, head, bodies,
// foot. Cells inside rows carry attr, alignment, row span, col span,
// and blocks. Only spans greater than one are kept as attributes.

func readTable(ctx ReadContext, tok pandoc.Token) []Node {
	var rows []Node

	head := itemAt(tok.C, 3)
	for _, row := range payloadItems(itemAt(head, 1)) {
		rows = append(rows, readTableRow(ctx, row, true))
	}

	for _, body := range payloadItems(itemAt(tok.C, 4)) {
		// A table body holds an intermediate head row group and the body
		// row group.
		for _, row := range payloadItems(itemAt(body, 2)) {
			rows = append(rows, readTableRow(ctx, row, true))
		}
		for _, row := range payloadItems(itemAt(body, 3)) {
			rows = append(rows, readTableRow(ctx, row, false))
		}
	}

	foot := itemAt(tok.C, 5)
	for _, row := range payloadItems(itemAt(foot, 1)) {
		rows = append(rows, readTableRow(ctx, row, false))
	}

	if len(rows) == 0 {
		return nil
	}

	table := Node{Type: "table", Content: rows}
	if caption := pandoc.CollectText(tokensIn(itemAt(itemAt(tok.C, 1), 1))); caption != "" {
		table.Attrs = map[string]any{"caption": caption}
	}
	return []Node{table}
}

func readTableRow(ctx ReadContext, row any, header bool) Node {
	cellType := "table_cell"
	if header {
		cellType = "table_header"
	}

	var cells []Node
	for _, cell := range payloadItems(itemAt(row, 1)) {
		node := Node{
			Type:    cellType,
			Content: ctx.ReadBlocks(tokensAt(cell, 4)),
		}
		rowSpan := intAt(cell, 2)
		colSpan := intAt(cell, 3)
		if rowSpan > 1 || colSpan > 1 {
			node.Attrs = map[string]any{}
			if rowSpan > 1 {
				node.Attrs["rowspan"] = rowSpan
			}
			if colSpan > 1 {
				node.Attrs["colspan"] = colSpan
			}
		}
		cells = append(cells, node)
	}

	return Node{Type: "table_row", Content: cells}
}

func writeTable(ctx WriteContext, node Node) []pandoc.Token {
	var headRows, bodyRows []any
	columns := 0

	for _, row := range node.Content {
		if row.Type != "table_row" {
			continue
		}
		if len(row.Content) > columns {
			columns = len(row.Content)
		}
		if isHeaderRow(row) && len(bodyRows) == 0 {
			headRows = append(headRows, writeTableRow(ctx, row))
		} else {
			bodyRows = append(bodyRows, writeTableRow(ctx, row))
		}
	}

	if columns == 0 {
		return nil
	}

	colSpecs := make([]any, columns)
	for idx := range colSpecs {
		colSpecs[idx] = []any{
			pandoc.Token{T: "AlignDefault"},
			pandoc.Token{T: "ColWidthDefault"},
		}
	}

	caption := []any{nil, []any{}}
	if text, _ := node.Attrs["caption"].(string); text != "" {
		caption = []any{nil, []any{pandoc.Token{T: "Plain", C: pandoc.TextInlines(text)}}}
	}

	if headRows == nil {
		headRows = []any{}
	}
	if bodyRows == nil {
		bodyRows = []any{}
	}

	return []pandoc.Token{{
		T: "Table",
		C: []any{
			emptyAttr(),
			caption,
			colSpecs,
			[]any{emptyAttr(), headRows},
			[]any{[]any{emptyAttr(), 0, []any{}, bodyRows}},
			[]any{emptyAttr(), []any{}},
		},
	}}
}

func isHeaderRow(row Node) bool {
	if len(row.Content) == 0 {
		return false
	}
	for _, cell := range row.Content {
		if cell.Type != "table_header" {
			return false
		}
	}
	return true
}

func writeTableRow(ctx WriteContext, row Node) []any {
	cells := make([]any, 0, len(row.Content))
	for _, cell := range row.Content {
		rowSpan := spanAttr(cell, "rowspan")
		colSpan := spanAttr(cell, "colspan")
		cells = append(cells, []any{
			emptyAttr(),
			pandoc.Token{T: "AlignDefault"},
			rowSpan,
			colSpan,
			ctx.WriteBlocks(cell.Content),
		})
	}
	return []any{emptyAttr(), cells}
}

func spanAttr(cell Node, key string) int {
	switch v := cell.Attrs[key].(type) {
	case int:
		if v > 1 {
			return v
		}
	case float64:
		if v > 1 {
			return int(v)
		}
	}
	return 1
}
