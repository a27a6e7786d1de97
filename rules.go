package apikit

import (
	"fmt"
	"net/mail"
	"strings"
)

// RuleFunc is a single named validation rule. It receives the field value,
// the owning model (for cross-field checks), and the options attached to the
// rule in the schema, and resolves to an envelope: Success when the value
// passes, Error with an actionable message when it does not.
type RuleFunc func(value any, m *Model, opts RuleOptions) Response

// Kind is the closed set of value kinds the type-checking rules understand.
// Schema authors pick a kind explicitly instead of relying on runtime
// reflection.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindMap    Kind = "map"
	KindSlice  Kind = "slice"
)

// MatchFunc reports whether a value belongs to a caller-defined category.
// It backs the instanceOf rule and arrayOf element checks where a plain Kind
// is not expressive enough.
type MatchFunc func(value any) bool

// RuleOptions carries per-schema-entry configuration for a rule. Only the
// fields a given rule reads are meaningful; the rest are ignored.
type RuleOptions struct {
	// Length is the threshold for the minLength rule.
	Length int
	// Kind is the expected value kind for typeOf, or element kind for arrayOf.
	Kind Kind
	// Match is the category predicate for instanceOf, and takes precedence
	// over Kind for arrayOf elements when set.
	Match MatchFunc
	// Errors holds positional message overrides. Rules pick a message by a
	// fixed index and fall back to their default when the index is absent.
	Errors []string
}

// messageAt returns the positional override at idx, or def when the override
// list does not reach that far or the entry is empty.
func messageAt(opts RuleOptions, idx int, def string) string {
	if idx < 0 || idx >= len(opts.Errors) || opts.Errors[idx] == "" {
		return def
	}
	return opts.Errors[idx]
}

// kindOf maps a runtime value onto the closed Kind set. JSON-decoded values
// only ever produce string, bool, float64, map[string]any and []any, but the
// native integer kinds are recognized too so models built from Go literals
// behave the same way.
func kindOf(value any) (Kind, bool) {
	switch value.(type) {
	case string:
		return KindString, true
	case bool:
		return KindBool, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt, true
	case float32, float64:
		return KindFloat, true
	case map[string]any:
		return KindMap, true
	case []any:
		return KindSlice, true
	default:
		return "", false
	}
}

// builtinRules returns the rule set every client starts with. Callers may
// overwrite any of these via RegisterRule.
func builtinRules() map[string]RuleFunc {
	return map[string]RuleFunc{
		"required":   ruleRequired,
		"email":      ruleEmail,
		"minLength":  ruleMinLength,
		"arrayOf":    ruleArrayOf,
		"instanceOf": ruleInstanceOf,
		"typeOf":     ruleTypeOf,
	}
}

func ruleRequired(value any, _ *Model, opts RuleOptions) Response {
	fail := ErrorResponse(messageAt(opts, 0, "field is required"))
	if value == nil {
		return fail
	}
	if s, ok := value.(string); ok && s == "" {
		return fail
	}
	return SuccessResponse("", nil)
}

// ruleEmail passes absent values through; combine with required when the
// field is mandatory.
func ruleEmail(value any, _ *Model, opts RuleOptions) Response {
	s, ok := value.(string)
	if !ok || s == "" {
		return SuccessResponse("", nil)
	}

	fail := ErrorResponse(messageAt(opts, 0, "must be a valid email address"))

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return fail
	}
	// mail.ParseAddress accepts bare local parts and dotless domains; typical
	// web use expects local@domain.tld.
	parts := strings.Split(addr.Address, "@")
	if len(parts) != 2 || parts[0] == "" {
		return fail
	}
	domain := parts[1]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fail
	}
	return SuccessResponse("", nil)
}

// ruleMinLength is a no-op on absent or non-string values.
func ruleMinLength(value any, _ *Model, opts RuleOptions) Response {
	s, ok := value.(string)
	if !ok {
		return SuccessResponse("", nil)
	}
	if len(s) < opts.Length {
		return ErrorResponse(messageAt(opts, 0, fmt.Sprintf("must be at least %d characters long", opts.Length)))
	}
	return SuccessResponse("", nil)
}

func ruleArrayOf(value any, _ *Model, opts RuleOptions) Response {
	items, ok := value.([]any)
	if !ok {
		return ErrorResponse(messageAt(opts, 0, "must be an array"))
	}
	for i, item := range items {
		if opts.Match != nil {
			if !opts.Match(item) {
				return ErrorResponse(messageAt(opts, 1, fmt.Sprintf("item %d does not match the expected type", i)))
			}
			continue
		}
		if k, known := kindOf(item); !known || k != opts.Kind {
			return ErrorResponse(messageAt(opts, 1, fmt.Sprintf("item %d must be of type %s", i, opts.Kind)))
		}
	}
	return SuccessResponse("", nil)
}

func ruleInstanceOf(value any, _ *Model, opts RuleOptions) Response {
	if opts.Match == nil || !opts.Match(value) {
		return ErrorResponse(messageAt(opts, 0, "value is not an instance of the expected type"))
	}
	return SuccessResponse("", nil)
}

func ruleTypeOf(value any, _ *Model, opts RuleOptions) Response {
	if k, known := kindOf(value); !known || k != opts.Kind {
		return ErrorResponse(messageAt(opts, 0, fmt.Sprintf("must be of type %s", opts.Kind)))
	}
	return SuccessResponse("", nil)
}
