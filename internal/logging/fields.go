package logging

// Field name constants for structured logging.
const (
	FieldError = "error"

	// Format negotiation fields.
	FieldEngine  = "engine"
	FieldFormat  = "format"
	FieldBase    = "base"
	FieldOptions = "options"

	// Conversion warning fields.
	FieldType = "type"
	FieldName = "name"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
