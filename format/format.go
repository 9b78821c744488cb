// Package format negotiates markdown dialects and their extension sets
// against the external engine. A requested format string such as
// "markdown+footnotes-smart" is resolved into a canonical base dialect,
// a validated extension mapping, and a stable full-format identifier;
// anything unrecognized is reported as warning data, never as an error.
package format

import (
	"context"
	"strings"
)

// FallbackBase is substituted when the requested base dialect is not on
// the allow-list.
const FallbackBase = "markdown"

// BaseFormats is the fixed allow-list of base dialects the engine
// understands.
var BaseFormats = []string{
	"markdown",
	"markdown_phpextra",
	"markdown_github",
	"markdown_mmd",
	"markdown_strict",
	"gfm",
	"commonmark",
}

// ExtensionLister is the slice of the engine contract the negotiator
// consumes.
type ExtensionLister interface {
	ListExtensions(ctx context.Context, dialect string) (string, error)
}

// Warnings records the recoverable problems found while resolving a
// format request. A non-empty InvalidFormat means the requested base
// was rejected and FallbackBase was used instead.
type Warnings struct {
	InvalidFormat  string   `json:"invalidFormat,omitempty"`
	InvalidOptions []string `json:"invalidOptions,omitempty"`
}

// Resolved is the negotiated, validated description of a dialect plus
// its active extension set.
type Resolved struct {
	BaseName   string          `json:"baseName"`
	FullName   string          `json:"fullName"`
	Extensions map[string]bool `json:"extensions"`
	Warnings   Warnings        `json:"warnings"`
}

// Resolve negotiates a requested format string against the engine's
// declared capabilities.
//
// The request splits into a base dialect and option toggles at the
// first + or -. An off-list base falls back to markdown and is recorded
// in Warnings.InvalidFormat. The extension mapping starts from the
// dialect's full applicable set; for gfm and commonmark that set is
// computed as a delta on top of markdown: every markdown extension is
// forced off, then the dialect's own declared set overlays it (later
// entries win). User options validate against the dialect's own
// declared set: valid ones overwrite the mapping and extend FullName in
// the order given, invalid ones land in Warnings.InvalidOptions.
//
// Engine failures propagate unchanged; no partial result is returned.
func Resolve(ctx context.Context, engine ExtensionLister, request string) (Resolved, error) {
	base, options := Split(request)

	var warnings Warnings
	if !isBaseFormat(base) {
		warnings.InvalidFormat = base
		base = FallbackBase
	}

	validOptions, err := engine.ListExtensions(ctx, base)
	if err != nil {
		return Resolved{}, err
	}

	formatOptions := validOptions
	if base == "gfm" || base == "commonmark" {
		markdownOptions, err := engine.ListExtensions(ctx, FallbackBase)
		if err != nil {
			return Resolved{}, err
		}
		formatOptions = strings.ReplaceAll(markdownOptions, "+", "-") + validOptions
	}

	extensions := make(map[string]bool)
	for _, descriptor := range ParseDescriptors(formatOptions) {
		extensions[descriptor.Name] = descriptor.Enabled
	}

	validNames := make(map[string]bool)
	for _, descriptor := range ParseDescriptors(validOptions) {
		validNames[descriptor.Name] = true
	}

	fullName := base
	for _, descriptor := range ParseDescriptors(options) {
		if !validNames[descriptor.Name] {
			warnings.InvalidOptions = append(warnings.InvalidOptions, descriptor.Name)
			continue
		}
		if descriptor.Enabled {
			fullName += "+" + descriptor.Name
		} else {
			fullName += "-" + descriptor.Name
		}
		extensions[descriptor.Name] = descriptor.Enabled
	}

	return Resolved{
		BaseName:   base,
		FullName:   fullName,
		Extensions: extensions,
		Warnings:   warnings,
	}, nil
}

// Split divides a format request into its base name and the raw
// option toggles that follow it. When no toggle sign occurs the options
// are empty.
func Split(request string) (base, options string) {
	if idx := strings.IndexAny(request, "+-"); idx >= 0 {
		return request[:idx], request[idx:]
	}
	return request, ""
}

// ApplyDelta splices extension toggles around the existing options of a
// format string: base + prefix + options + suffix. No validation is
// performed here; Resolve validates.
func ApplyDelta(request, prefix, suffix string) string {
	base, options := Split(request)
	return base + prefix + options + suffix
}

func isBaseFormat(name string) bool {
	for _, base := range BaseFormats {
		if base == name {
			return true
		}
	}
	return false
}
