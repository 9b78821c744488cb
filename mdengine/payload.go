package mdengine

import "github.com/rgonek/pandoc-prose-bridge/pandoc"

// payloadItems normalizes a token payload into a flat item slice.
func payloadItems(payload any) []any {
	switch typed := payload.(type) {
	case []any:
		return typed
	case []pandoc.Token:
		items := make([]any, len(typed))
		for idx, token := range typed {
			items[idx] = token
		}
		return items
	default:
		return nil
	}
}

// tokensFrom extracts the tokens held by a payload or payload item.
func tokensFrom(payload any) []pandoc.Token {
	switch typed := payload.(type) {
	case []pandoc.Token:
		return typed
	case []any:
		tokens := make([]pandoc.Token, 0, len(typed))
		for _, item := range typed {
			if token, ok := item.(pandoc.Token); ok {
				tokens = append(tokens, token)
			}
		}
		return tokens
	case pandoc.Token:
		return []pandoc.Token{typed}
	default:
		return nil
	}
}

func intFrom(value any, fallback int) int {
	switch typed := value.(type) {
	case int:
		return typed
	case float64:
		return int(typed)
	default:
		return fallback
	}
}

// firstClass returns the first class name from an attr triple.
func firstClass(attr any) string {
	items := payloadItems(attr)
	if len(items) < 2 {
		return ""
	}
	classes := payloadItems(items[1])
	if len(classes) == 0 {
		return ""
	}
	class, _ := classes[0].(string)
	return class
}
