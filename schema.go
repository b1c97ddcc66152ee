package fragset

// SchemaKind distinguishes schemas describing extractable content from
// schemas describing anti-patterns (pages with no extractable content).
type SchemaKind string

// Schema kinds.
const (
	KindPositive SchemaKind = "positive"
	KindNegative SchemaKind = "negative"
)

// Schema describes one fragment category: a structured content type such as
// "recipe", or a negative category such as "auth_required". Pattern lists are
// plain config data; they are necessary-evidence heuristics over noisy page
// markup, not sufficient conditions.
type Schema struct {
	// TypeName is the unique key for the schema. Positive and negative
	// schemas share one namespace.
	TypeName string

	// Kind is positive or negative.
	Kind SchemaKind

	// ValidationPatterns holds ordered regex strings. For positive schemas
	// these are evidence that the fragment contains the content type; for
	// negative schemas they are the category's structural and linguistic
	// signature. May be empty.
	ValidationPatterns []string

	// AnnotationTemplate is the field structure written as an annotation
	// stub for human completion. Used only by the storage router; the
	// classifier never reads it.
	AnnotationTemplate map[string]any
}

// IsPositive returns true for schemas describing extractable content.
func (s *Schema) IsPositive() bool {
	return s.Kind == KindPositive
}

// SchemaRegistry is an immutable lookup from type name to schema, populated
// at startup.
type SchemaRegistry interface {
	// Get returns the schema for a type name.
	// Returns ENOTFOUND listing the valid names if the type is unknown.
	Get(typeName string) (*Schema, error)

	// ValidationPatterns returns the pattern list for a type name. A schema
	// with no patterns yields an empty slice, not an error.
	// Returns ENOTFOUND if the type is unknown.
	ValidationPatterns(typeName string) ([]string, error)

	// TypeNames returns all registered type names in registration order.
	TypeNames() []string

	// NegativeTypes returns the negative type names in screening priority
	// order (most common category first).
	NegativeTypes() []string
}
