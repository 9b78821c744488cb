package editor

import "github.com/rgonek/pandoc-prose-bridge/pandoc"

// Config customizes the reader and writer registries. Entries merge
// over the built-in registries, so a single tag or node type can be
// overridden without redeclaring the rest.
type Config struct {
	Readers     map[string]Reader
	Writers     map[string]Writer
	MarkWriters map[string]MarkWriter
}

// Converter translates between the engine's token tree and the
// editable document model. A Converter is immutable after New and safe
// for concurrent use; every conversion runs on its own state.
type Converter struct {
	readers     map[string]Reader
	writers     map[string]Writer
	markWriters map[string]MarkWriter
}

// New creates a Converter with the built-in registries extended by the
// config.
func New(config Config) *Converter {
	c := &Converter{
		readers:     defaultReaders(),
		writers:     defaultWriters(),
		markWriters: defaultMarkWriters(),
	}
	for tag, reader := range config.Readers {
		c.readers[tag] = reader
	}
	for nodeType, write := range config.Writers {
		c.writers[nodeType] = write
	}
	for markType, write := range config.MarkWriters {
		c.markWriters[markType] = write
	}
	return c
}

// FromAST builds an editable document from the engine's document tree.
// Unknown tokens degrade to their flattened text and are reported as
// warnings; the conversion itself never fails.
func (c *Converter) FromAST(doc pandoc.Document) (Doc, []Warning) {
	r := &reader{readers: c.readers}
	return r.readDocument(doc), r.warnings
}

// ToAST rebuilds the engine's document tree from an editable document.
func (c *Converter) ToAST(doc Doc) (pandoc.Document, []Warning) {
	w := &writer{writers: c.writers, markWriters: c.markWriters}
	return w.writeDocument(doc), w.warnings
}

// FromAST converts with the built-in registries.
func FromAST(doc pandoc.Document) (Doc, []Warning) {
	return New(Config{}).FromAST(doc)
}

// ToAST converts with the built-in registries.
func ToAST(doc Doc) (pandoc.Document, []Warning) {
	return New(Config{}).ToAST(doc)
}
