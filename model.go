package apikit

import (
	"fmt"
	"maps"
)

// Field binds one request field to an ordered list of rule applications.
// Rules run in slice order and the first failure wins.
type Field struct {
	Name  string
	Rules []RuleRef
}

// RuleRef names a registered rule and carries its per-field options.
type RuleRef struct {
	Rule    string
	Options RuleOptions
}

// Schema is the validity contract of a request model: fields in declaration
// order, each with its rule chain. Validation short-circuits on the first
// failing field.
type Schema []Field

// CustomValidator is an optional cross-field check run after the schema
// passes. A failing envelope it returns becomes the model's result.
type CustomValidator func(m *Model) Response

// Model is a self-validating holder of request field data. Validity is
// computed exactly once, at construction, and is immutable afterwards;
// re-validation means constructing a new instance through the factory.
type Model struct {
	schema Schema
	custom CustomValidator
	client *Client
	data   map[string]any
	result Response
	valid  bool
}

// payload marks *Model as a valid Call argument.
func (m *Model) payload() {}

// IsValid reports whether both schema and custom validation succeeded.
func (m *Model) IsValid() bool { return m.valid }

// Result returns the authoritative validation envelope: the first failure,
// or a success envelope when the model is valid.
func (m *Model) Result() Response { return m.result }

// Get returns a field value supplied at construction.
func (m *Model) Get(field string) (any, bool) {
	v, ok := m.data[field]
	return v, ok
}

// Data returns the exact payload shape sent over the transport: a copy of
// the caller-supplied fields and nothing else. Schema, validator, client and
// validation state never appear in it.
func (m *Model) Data() map[string]any {
	out := make(map[string]any, len(m.data))
	maps.Copy(out, m.data)
	return out
}

// validate runs the schema field by field against the client's rule
// registry. An unregistered rule name is a schema-authoring mistake, but it
// is surfaced through the envelope channel so callers that only check
// Success still see a failure.
func (m *Model) validate() Response {
	for _, field := range m.schema {
		value := m.data[field.Name]
		for _, ref := range field.Rules {
			fn, err := m.client.Rule(ref.Rule)
			if err != nil {
				return ErrorResponse(fmt.Sprintf("validation rule %q is not registered", ref.Rule))
			}
			if res := fn(value, m, ref.Options); !res.Success {
				return res
			}
		}
	}
	return SuccessResponse("", nil)
}

// ModelFactory pairs a schema with an optional custom validator. It is
// stateless and safe to share across any number of New calls.
type ModelFactory struct {
	schema Schema
	custom CustomValidator
}

// NewFactory creates a model factory for the given schema. The custom
// validator may be nil.
func NewFactory(schema Schema, custom CustomValidator) *ModelFactory {
	return &ModelFactory{schema: schema, custom: custom}
}

// EmptyFactory returns the factory behind the "empty" model: no fields,
// always valid. Services pre-register it so endpoints without a payload can
// omit a schema entirely.
func EmptyFactory() *ModelFactory {
	return NewFactory(nil, nil)
}

// New builds a model from raw field data and validates it immediately.
// The client reference is borrowed for rule lookup only.
func (f *ModelFactory) New(data map[string]any, client *Client) *Model {
	m := &Model{
		schema: f.schema,
		custom: f.custom,
		client: client,
		data:   make(map[string]any, len(data)),
	}
	maps.Copy(m.data, data)

	m.result = m.validate()
	if m.result.Success && m.custom != nil {
		if res := m.custom(m); !res.Success {
			m.result = res
		}
	}
	m.valid = m.result.Success
	return m
}
