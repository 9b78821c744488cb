package pandoc

import "strings"

// CollectText flattens a token sequence to plain text, ignoring all
// styling. Str tokens contribute their literal payload, Space and
// SoftBreak contribute a single space, and every other token
// contributes the flattened text of whatever tokens its payload holds.
func CollectText(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		collectTokenText(&sb, tok)
	}
	return sb.String()
}

func collectTokenText(sb *strings.Builder, tok Token) {
	switch tok.T {
	case "Str":
		if text, ok := tok.C.(string); ok {
			sb.WriteString(text)
		}
	case "Space", "SoftBreak":
		sb.WriteByte(' ')
	default:
		collectPayloadText(sb, tok.C)
	}
}

func collectPayloadText(sb *strings.Builder, payload any) {
	switch payload := payload.(type) {
	case Token:
		collectTokenText(sb, payload)
	case []Token:
		for _, tok := range payload {
			collectTokenText(sb, tok)
		}
	case []any:
		for _, item := range payload {
			collectPayloadText(sb, item)
		}
	}
}

// Walk visits every token reachable from the sequence in depth-first
// pre-order: each token is visited before the tokens inside its
// payload. Arrays are recursed element-wise and nested token payloads
// are recursed directly.
func Walk(tokens []Token, visit func(Token)) {
	for _, tok := range tokens {
		walkToken(tok, visit)
	}
}

func walkToken(tok Token, visit func(Token)) {
	visit(tok)
	walkPayload(tok.C, visit)
}

func walkPayload(payload any, visit func(Token)) {
	switch payload := payload.(type) {
	case Token:
		walkToken(payload, visit)
	case []Token:
		for _, tok := range payload {
			walkToken(tok, visit)
		}
	case []any:
		for _, item := range payload {
			walkPayload(item, visit)
		}
	}
}

// Transform rebuilds the sequence depth-first. Each token is passed
// through transform first; if the transformed token still carries an
// array payload, the tokens inside it are rebuilt the same way and the
// rebuilt array is assigned back. The input sequence is never mutated.
func Transform(tokens []Token, transform func(Token) Token) []Token {
	rebuilt := make([]Token, len(tokens))
	for idx, tok := range tokens {
		rebuilt[idx] = transformToken(tok, transform)
	}
	return rebuilt
}

func transformToken(tok Token, transform func(Token) Token) Token {
	tok = transform(tok)
	switch payload := tok.C.(type) {
	case []Token:
		tok.C = Transform(payload, transform)
	case []any:
		rebuilt := make([]any, len(payload))
		for idx, item := range payload {
			rebuilt[idx] = transformPayload(item, transform)
		}
		tok.C = rebuilt
	}
	return tok
}

func transformPayload(payload any, transform func(Token) Token) any {
	switch payload := payload.(type) {
	case Token:
		return transformToken(payload, transform)
	case []Token:
		return Transform(payload, transform)
	case []any:
		rebuilt := make([]any, len(payload))
		for idx, item := range payload {
			rebuilt[idx] = transformPayload(item, transform)
		}
		return rebuilt
	default:
		return payload
	}
}
