package editor

import (
	"github.com/rgonek/pandoc-prose-bridge/pandoc"
)

// Token payloads are heterogeneous arrays whose shape depends on the
// tag. These helpers navigate them defensively: a missing or
// wrong-shaped element yields a zero value rather than a panic, since
// degrading to lossy output beats failing the whole conversion.

func payloadItems(payload any) []any {
	switch payload := payload.(type) {
	case []any:
		return payload
	case []pandoc.Token:
		items := make([]any, len(payload))
		for idx, tok := range payload {
			items[idx] = tok
		}
		return items
	default:
		return nil
	}
}

func itemAt(payload any, idx int) any {
	items := payloadItems(payload)
	if idx < 0 || idx >= len(items) {
		return nil
	}
	return items[idx]
}

func stringAt(payload any, idx int) string {
	s, _ := itemAt(payload, idx).(string)
	return s
}

func intAt(payload any, idx int) int {
	switch v := itemAt(payload, idx).(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func tokenAt(payload any, idx int) (pandoc.Token, bool) {
	tok, ok := itemAt(payload, idx).(pandoc.Token)
	return tok, ok
}

// tokensIn converts an array-shaped payload element into the token
// sequence it holds, skipping non-token entries.
func tokensIn(payload any) []pandoc.Token {
	items := payloadItems(payload)
	tokens := make([]pandoc.Token, 0, len(items))
	for _, item := range items {
		if tok, ok := item.(pandoc.Token); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func tokensAt(payload any, idx int) []pandoc.Token {
	return tokensIn(itemAt(payload, idx))
}

// attr mirrors the engine's [id, [classes], [[key, value]]] attribute
// triple.
type attr struct {
	ID      string
	Classes []string
	KVs     map[string]string
}

func attrAt(payload any, idx int) attr {
	return parseAttr(itemAt(payload, idx))
}

func parseAttr(payload any) attr {
	parsed := attr{ID: stringAt(payload, 0)}
	for _, item := range payloadItems(itemAt(payload, 1)) {
		if class, ok := item.(string); ok {
			parsed.Classes = append(parsed.Classes, class)
		}
	}
	for _, item := range payloadItems(itemAt(payload, 2)) {
		pair := payloadItems(item)
		if len(pair) == 2 {
			key, keyOK := pair[0].(string)
			value, valueOK := pair[1].(string)
			if keyOK && valueOK {
				if parsed.KVs == nil {
					parsed.KVs = make(map[string]string)
				}
				parsed.KVs[key] = value
			}
		}
	}
	return parsed
}

func emptyAttr() []any {
	return []any{"", []any{}, []any{}}
}

func classAttr(classes ...string) []any {
	items := make([]any, len(classes))
	for idx, class := range classes {
		items[idx] = class
	}
	return []any{"", items, []any{}}
}
