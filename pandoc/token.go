// Package pandoc defines the wire-level document tree produced by the
// external markdown engine, the generic utilities for traversing and
// rebuilding that tree, and the engine service contract.
package pandoc

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Token is one element of the engine's document tree: a type tag plus an
// optional payload. The payload may hold nested tokens, arrays mixing
// tokens with primitive values, or a plain primitive, depending on the
// tag.
type Token struct {
	T string
	C any
}

// Document is the top-level AST the engine emits and accepts.
type Document struct {
	PandocAPIVersion []int            `json:"pandoc-api-version"`
	Meta             map[string]Token `json:"meta"`
	Blocks           []Token          `json:"blocks"`
}

type tokenWire struct {
	T string `json:"t"`
	C any    `json:"c,omitempty"`
}

// MarshalJSON encodes the token in the engine's {"t": ..., "c": ...}
// shape. A nil payload omits the c field entirely.
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenWire{T: t.T, C: t.C})
}

// UnmarshalJSON decodes the engine's wire shape. Payloads are decoded
// recursively: any object carrying a t field becomes a Token, arrays
// become []any with converted elements, and primitives stay primitive.
func (t *Token) UnmarshalJSON(data []byte) error {
	var wire struct {
		T string          `json:"t"`
		C json.RawMessage `json:"c"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.T == "" {
		return fmt.Errorf("token object has no t field: %s", string(data))
	}

	t.T = wire.T
	t.C = nil
	if len(wire.C) == 0 || string(wire.C) == "null" {
		return nil
	}

	payload, err := decodePayload(wire.C)
	if err != nil {
		return err
	}
	t.C = payload
	return nil
}

func decodePayload(data json.RawMessage) (any, error) {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if trimmed == "" {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var probe struct {
			T *string `json:"t"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, err
		}
		if probe.T != nil {
			var tok Token
			if err := json.Unmarshal(data, &tok); err != nil {
				return nil, err
			}
			return tok, nil
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		obj := make(map[string]any, len(raw))
		for key, value := range raw {
			decoded, err := decodePayload(value)
			if err != nil {
				return nil, err
			}
			obj[key] = decoded
		}
		return obj, nil

	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		arr := make([]any, len(raw))
		for idx, value := range raw {
			decoded, err := decodePayload(value)
			if err != nil {
				return nil, err
			}
			arr[idx] = decoded
		}
		return arr, nil

	default:
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, err
		}
		return value, nil
	}
}

// TextInlines splits plain text into the Str/Space/SoftBreak token run
// the engine would produce for it. Consecutive spaces yield consecutive
// Space tokens; line breaks become SoftBreak.
func TextInlines(text string) []Token {
	var inlines []Token
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			inlines = append(inlines, Token{T: "SoftBreak"})
		}
		for wordIdx, word := range strings.Split(line, " ") {
			if wordIdx > 0 {
				inlines = append(inlines, Token{T: "Space"})
			}
			if word != "" {
				inlines = append(inlines, Token{T: "Str", C: word})
			}
		}
	}
	return inlines
}
