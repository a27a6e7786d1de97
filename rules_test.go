package apikit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit"
)

func newTestClient(t *testing.T, opts ...apikit.Option) *apikit.Client {
	t.Helper()
	c, err := apikit.New(apikit.Config{Mock: true}, opts...)
	require.NoError(t, err)
	return c
}

func rule(t *testing.T, c *apikit.Client, name string) apikit.RuleFunc {
	t.Helper()
	fn, err := c.Rule(name)
	require.NoError(t, err)
	return fn
}

func TestBuiltinRequired(t *testing.T) {
	c := newTestClient(t)
	fn := rule(t, c, "required")

	tests := []struct {
		name  string
		value any
		valid bool
	}{
		{"nil value fails", nil, false},
		{"empty string fails", "", false},
		{"non-empty string passes", "x", true},
		{"zero number passes", 0, true},
		{"false passes", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := fn(tt.value, nil, apikit.RuleOptions{})
			assert.Equal(t, tt.valid, res.Success)
		})
	}

	t.Run("default message", func(t *testing.T) {
		res := fn(nil, nil, apikit.RuleOptions{})
		assert.Equal(t, "field is required", res.Message)
	})
}

func TestBuiltinEmail(t *testing.T) {
	c := newTestClient(t)
	fn := rule(t, c, "email")

	tests := []struct {
		name  string
		value any
		valid bool
	}{
		{"valid address passes", "user@example.com", true},
		{"missing at sign fails", "invalid-email.com", false},
		{"dotless domain fails", "user@localhost", false},
		{"empty string is a no-op", "", true},
		{"absent value is a no-op", nil, true},
		{"non-string is a no-op", 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := fn(tt.value, nil, apikit.RuleOptions{})
			assert.Equal(t, tt.valid, res.Success)
		})
	}

	t.Run("failure mentions valid email", func(t *testing.T) {
		res := fn("invalid-email.com", nil, apikit.RuleOptions{})
		require.False(t, res.Success)
		assert.Contains(t, res.Message, "valid email")
	})
}

func TestBuiltinMinLength(t *testing.T) {
	c := newTestClient(t)
	fn := rule(t, c, "minLength")

	t.Run("shorter string fails", func(t *testing.T) {
		res := fn("abc", nil, apikit.RuleOptions{Length: 5})
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "5")
	})

	t.Run("exact length passes", func(t *testing.T) {
		res := fn("abcde", nil, apikit.RuleOptions{Length: 5})
		assert.True(t, res.Success)
	})

	t.Run("non-string is a no-op", func(t *testing.T) {
		res := fn(12345, nil, apikit.RuleOptions{Length: 5})
		assert.True(t, res.Success)
	})

	t.Run("zero length option passes everything", func(t *testing.T) {
		res := fn("", nil, apikit.RuleOptions{})
		assert.True(t, res.Success)
	})
}

func TestBuiltinArrayOf(t *testing.T) {
	c := newTestClient(t)
	fn := rule(t, c, "arrayOf")

	t.Run("non-array fails", func(t *testing.T) {
		res := fn("not a slice", nil, apikit.RuleOptions{Kind: apikit.KindString})
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "array")
	})

	t.Run("homogeneous elements pass", func(t *testing.T) {
		res := fn([]any{"a", "b"}, nil, apikit.RuleOptions{Kind: apikit.KindString})
		assert.True(t, res.Success)
	})

	t.Run("mismatched element fails", func(t *testing.T) {
		res := fn([]any{"a", 1}, nil, apikit.RuleOptions{Kind: apikit.KindString})
		assert.False(t, res.Success)
	})

	t.Run("match predicate overrides kind", func(t *testing.T) {
		isPositive := func(v any) bool {
			f, ok := v.(float64)
			return ok && f > 0
		}
		res := fn([]any{1.0, 2.0}, nil, apikit.RuleOptions{Match: isPositive})
		assert.True(t, res.Success)

		res = fn([]any{1.0, -2.0}, nil, apikit.RuleOptions{Match: isPositive})
		assert.False(t, res.Success)
	})

	t.Run("empty array passes", func(t *testing.T) {
		res := fn([]any{}, nil, apikit.RuleOptions{Kind: apikit.KindInt})
		assert.True(t, res.Success)
	})
}

func TestBuiltinInstanceOf(t *testing.T) {
	c := newTestClient(t)
	fn := rule(t, c, "instanceOf")

	type user struct{ ID int }
	isUser := func(v any) bool {
		_, ok := v.(user)
		return ok
	}

	t.Run("matching value passes", func(t *testing.T) {
		res := fn(user{ID: 1}, nil, apikit.RuleOptions{Match: isUser})
		assert.True(t, res.Success)
	})

	t.Run("non-matching value fails", func(t *testing.T) {
		res := fn("nope", nil, apikit.RuleOptions{Match: isUser})
		assert.False(t, res.Success)
	})

	t.Run("missing predicate fails", func(t *testing.T) {
		res := fn(user{ID: 1}, nil, apikit.RuleOptions{})
		assert.False(t, res.Success)
	})
}

func TestBuiltinTypeOf(t *testing.T) {
	c := newTestClient(t)
	fn := rule(t, c, "typeOf")

	tests := []struct {
		name  string
		value any
		kind  apikit.Kind
		valid bool
	}{
		{"string matches", "x", apikit.KindString, true},
		{"bool matches", true, apikit.KindBool, true},
		{"int matches", 7, apikit.KindInt, true},
		{"float matches", 7.5, apikit.KindFloat, true},
		{"map matches", map[string]any{}, apikit.KindMap, true},
		{"slice matches", []any{}, apikit.KindSlice, true},
		{"string is not int", "7", apikit.KindInt, false},
		{"nil never matches", nil, apikit.KindString, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := fn(tt.value, nil, apikit.RuleOptions{Kind: tt.kind})
			assert.Equal(t, tt.valid, res.Success)
		})
	}
}

func TestErrorMessageOverrides(t *testing.T) {
	c := newTestClient(t)

	t.Run("primary override replaces default", func(t *testing.T) {
		fn := rule(t, c, "required")
		res := fn(nil, nil, apikit.RuleOptions{Errors: []string{"name is mandatory"}})
		assert.Equal(t, "name is mandatory", res.Message)
	})

	t.Run("secondary override for arrayOf element branch", func(t *testing.T) {
		fn := rule(t, c, "arrayOf")
		opts := apikit.RuleOptions{
			Kind:   apikit.KindString,
			Errors: []string{"want a list", "want strings only"},
		}

		res := fn("scalar", nil, opts)
		assert.Equal(t, "want a list", res.Message)

		res = fn([]any{1}, nil, opts)
		assert.Equal(t, "want strings only", res.Message)
	})

	t.Run("out of range override falls back to default", func(t *testing.T) {
		fn := rule(t, c, "arrayOf")
		res := fn([]any{1}, nil, apikit.RuleOptions{Kind: apikit.KindString, Errors: []string{"want a list"}})
		assert.Contains(t, res.Message, "must be of type string")
	})

	t.Run("empty override falls back to default", func(t *testing.T) {
		fn := rule(t, c, "required")
		res := fn(nil, nil, apikit.RuleOptions{Errors: []string{""}})
		assert.Equal(t, "field is required", res.Message)
	})
}
