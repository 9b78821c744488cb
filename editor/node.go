// Package editor defines the client document model used for in-place
// editing and the reader/writer registries that translate between the
// engine's token tree and that model.
package editor

import (
	"reflect"
	"strings"
)

// Doc is the root of the editable document.
type Doc struct {
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`
}

// Node is any node of the editable document (paragraph, heading, text,
// etc.).
type Node struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Mark is formatting applied to a text node (strong, em, link, etc.).
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownToken   WarningType = "unknown_token"
	WarningUnknownNode    WarningType = "unknown_node"
	WarningUnknownMark    WarningType = "unknown_mark"
	WarningDroppedFeature WarningType = "dropped_feature"
)

// Warning represents a non-fatal issue encountered during conversion.
// Name holds the offending token tag, node type, or mark type.
type Warning struct {
	Type    WarningType `json:"type"`
	Name    string      `json:"name,omitempty"`
	Message string      `json:"message"`
}

func newTextNode(text string, marks []Mark) Node {
	return Node{Type: "text", Text: text, Marks: marks}
}

// appendInlineNode appends an inline node, merging adjacent text nodes
// that carry the same marks.
func appendInlineNode(content []Node, next Node) []Node {
	if next.Type == "text" && next.Text == "" {
		return content
	}
	if len(content) > 0 {
		last := &content[len(content)-1]
		if last.Type == "text" && next.Type == "text" && markListsEqual(last.Marks, next.Marks) {
			last.Text += next.Text
			return content
		}
	}
	return append(content, next)
}

func markListsEqual(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !marksEqual(a[idx], b[idx]) {
			return false
		}
	}
	return true
}

func marksEqual(a, b Mark) bool {
	return a.Type == b.Type && attrsEqual(a.Attrs, b.Attrs)
}

func attrsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for key, valueA := range a {
		valueB, ok := b[key]
		// Decoded attrs can hold slices and maps, which == would panic on.
		if !ok || !reflect.DeepEqual(valueA, valueB) {
			return false
		}
	}
	return true
}

// flattenText concatenates every text payload reachable from the node.
func flattenText(node Node) string {
	var sb strings.Builder
	collectNodeText(&sb, node)
	return sb.String()
}

func collectNodeText(sb *strings.Builder, node Node) {
	if node.Text != "" {
		sb.WriteString(node.Text)
	}
	for _, child := range node.Content {
		collectNodeText(sb, child)
	}
}
