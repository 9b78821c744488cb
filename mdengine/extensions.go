package mdengine

import "fmt"

// Static extension descriptor tables, one per supported dialect,
// shaped like the external engine's --list-extensions output: one
// signed name per line, default state encoded by the sign.
var dialectExtensions = map[string]string{
	"markdown": `+auto_identifiers
+backtick_code_blocks
+citations
+definition_lists
+emoji
-hard_line_breaks
+fenced_code_attributes
+footnotes
+implicit_figures
+line_blocks
+pipe_tables
+raw_html
+smart
+strikeout
+subscript
+superscript
+task_lists
+tex_math_dollars
`,
	"markdown_strict": `-auto_identifiers
-backtick_code_blocks
-citations
-definition_lists
-emoji
-hard_line_breaks
-footnotes
-line_blocks
-pipe_tables
+raw_html
-smart
-strikeout
-subscript
-superscript
-task_lists
`,
	"markdown_phpextra": `+auto_identifiers
+backtick_code_blocks
-citations
+definition_lists
-emoji
-hard_line_breaks
+footnotes
+pipe_tables
+raw_html
-smart
-strikeout
-task_lists
`,
	"markdown_github": `+auto_identifiers
+backtick_code_blocks
-citations
-definition_lists
+emoji
+hard_line_breaks
-footnotes
+pipe_tables
+raw_html
-smart
+strikeout
+task_lists
`,
	"markdown_mmd": `+auto_identifiers
-backtick_code_blocks
+citations
+definition_lists
-emoji
-hard_line_breaks
+footnotes
+pipe_tables
+raw_html
-smart
-strikeout
+subscript
+superscript
-task_lists
`,
	"gfm": `-smart
+pipe_tables
+raw_html
+strikeout
+task_lists
+emoji
+autolink_bare_uris
-hard_line_breaks
+footnotes
`,
	"commonmark": `-smart
+raw_html
-hard_line_breaks
-autolink_bare_uris
`,
}

func listExtensions(dialect string) (string, error) {
	descriptors, ok := dialectExtensions[dialect]
	if !ok {
		return "", fmt.Errorf("unknown dialect %q", dialect)
	}
	return descriptors, nil
}
