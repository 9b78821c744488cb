package editor

import (
	"fmt"

	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

// Reader binds an engine token tag to instructions for producing
// document content. Exactly one of Node, Mark, or Handle should be
// set; the remaining fields refine how payload pieces are extracted.
type Reader struct {
	// Node names the document node to produce from the token.
	Node string
	// InlineContent marks the token's content as inline tokens rather
	// than block tokens.
	InlineContent bool
	// Mark names the mark wrapped around the token's inline children.
	Mark string
	// MarkAttrs extracts mark attributes from the token. Returning nil
	// drops the mark and keeps the children.
	MarkAttrs func(tok pandoc.Token) map[string]any
	// Attrs extracts node attributes from the token.
	Attrs func(tok pandoc.Token) map[string]any
	// Content selects the payload element holding the nested tokens.
	// Defaults to the whole payload.
	Content func(tok pandoc.Token) any
	// Handle takes over completely for tags whose shape does not fit
	// the declarative fields.
	Handle func(ctx ReadContext, tok pandoc.Token) []Node
}

// ReadContext exposes the running conversion to custom reader handlers.
type ReadContext struct {
	reader *reader
	stack  *markStack
}

// ReadBlocks converts block tokens to document nodes.
func (c ReadContext) ReadBlocks(tokens []pandoc.Token) []Node {
	return c.reader.readBlocks(tokens)
}

// ReadInlines converts an inline token payload to document nodes,
// applying the marks currently in effect.
func (c ReadContext) ReadInlines(payload any) []Node {
	return c.reader.readInlines(payload, c.stack)
}

// Marks returns the marks currently in effect.
func (c ReadContext) Marks() []Mark {
	return c.stack.current()
}

// Warn records a non-fatal conversion problem.
func (c ReadContext) Warn(warningType WarningType, name, message string) {
	c.reader.addWarning(warningType, name, message)
}

type reader struct {
	readers  map[string]Reader
	warnings []Warning
}

func (r *reader) addWarning(warningType WarningType, name, message string) {
	r.warnings = append(r.warnings, Warning{
		Type:    warningType,
		Name:    name,
		Message: message,
	})
}

func (r *reader) readDocument(doc pandoc.Document) Doc {
	return Doc{Type: "doc", Content: r.readBlocks(doc.Blocks)}
}

func (r *reader) readBlocks(tokens []pandoc.Token) []Node {
	var content []Node
	for _, tok := range tokens {
		content = append(content, r.readBlock(tok)...)
	}
	return content
}

func (r *reader) readBlock(tok pandoc.Token) []Node {
	spec, ok := r.readers[tok.T]
	if !ok {
		return r.unknownBlock(tok)
	}

	if spec.Handle != nil {
		return spec.Handle(ReadContext{reader: r, stack: newMarkStack()}, tok)
	}

	if spec.Node == "" {
		return r.unknownBlock(tok)
	}

	node := Node{Type: spec.Node}
	if spec.Attrs != nil {
		node.Attrs = spec.Attrs(tok)
	}

	payload := tok.C
	if spec.Content != nil {
		payload = spec.Content(tok)
	}
	if payload != nil {
		if spec.InlineContent {
			node.Content = r.readInlines(payload, newMarkStack())
		} else {
			node.Content = r.readBlocks(tokensIn(payload))
		}
	}

	return []Node{node}
}

func (r *reader) unknownBlock(tok pandoc.Token) []Node {
	r.addWarning(
		WarningUnknownToken,
		tok.T,
		fmt.Sprintf("unsupported block token: %s", tok.T),
	)

	text := pandoc.CollectText([]pandoc.Token{tok})
	if text == "" {
		return nil
	}
	return []Node{{
		Type:    "paragraph",
		Content: []Node{newTextNode(text, nil)},
	}}
}

func (r *reader) readInlines(payload any, stack *markStack) []Node {
	var content []Node
	for _, tok := range tokensIn(payload) {
		for _, node := range r.readInline(tok, stack) {
			content = appendInlineNode(content, node)
		}
	}
	return content
}

func (r *reader) readInline(tok pandoc.Token, stack *markStack) []Node {
	spec, ok := r.readers[tok.T]
	if !ok {
		return r.unknownInline(tok, stack)
	}

	if spec.Handle != nil {
		return spec.Handle(ReadContext{reader: r, stack: stack}, tok)
	}

	if spec.Mark != "" {
		payload := tok.C
		if spec.Content != nil {
			payload = spec.Content(tok)
		}

		mark := Mark{Type: spec.Mark}
		if spec.MarkAttrs != nil {
			mark.Attrs = spec.MarkAttrs(tok)
			if mark.Attrs == nil {
				return r.readInlines(payload, stack)
			}
		}

		stack.push(mark)
		content := r.readInlines(payload, stack)
		stack.popByType(mark.Type)
		return content
	}

	// A block-shaped reader encountered inline degrades to its text.
	return r.unknownInline(tok, stack)
}

func (r *reader) unknownInline(tok pandoc.Token, stack *markStack) []Node {
	r.addWarning(
		WarningUnknownToken,
		tok.T,
		fmt.Sprintf("unsupported inline token: %s", tok.T),
	)

	text := pandoc.CollectText([]pandoc.Token{tok})
	if text == "" {
		return nil
	}
	return []Node{newTextNode(text, stack.current())}
}
