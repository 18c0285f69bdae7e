package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		line string
		name string
		typ  JavaType
	}{
		// name: Type
		{"title: String", "title", TypeText},
		{"age: int", "age", TypeInteger},
		{"price: money", "price", TypeDecimal},
		{"createdAt: DateTime", "createdAt", TypeDateTime},
		{"Name: String", "name", TypeText},
		{"first name: text", "first_name", TypeText},
		{"count: Widget", "count", TypeText},
		{"a:b:c", "a", TypeText},
		// Type name
		{"String title", "title", TypeText},
		{"int age", "age", TypeInteger},
		{"UUID token", "token", TypeUUID},
		{"Address home", "home", TypeText},
		// bare line
		{"title", "title", TypeText},
		{"just some words", "just_some_words", TypeText},
		{"lowercase pair", "lowercase_pair", TypeText},
		{"42", "_42", TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			f := ParseAttribute(tt.line, 0)
			assert.Equal(t, tt.name, f.Name)
			assert.Equal(t, tt.typ, f.Type)
		})
	}
}

func TestParseAttributeBlank(t *testing.T) {
	tests := []struct {
		line  string
		index int
		name  string
	}{
		{"", 0, "field_1"},
		{"   ", 2, "field_3"},
		{"\t", 9, "field_10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseAttribute(tt.line, tt.index)
			assert.Equal(t, tt.name, f.Name)
			assert.Equal(t, TypeText, f.Type)
		})
	}
}

// ParseAttribute is total: any input yields a usable field.
func TestParseAttributeTotal(t *testing.T) {
	inputs := []string{
		":", "::", ": ", " :", "!!!", "a b c d e", "int", "String",
		"名前: text", "price$: decimal", "- - -", ":int",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			f := ParseAttribute(in, 4)
			assert.NotNil(t, f)
			assert.NotEmpty(t, f.Name)
			assert.True(t, f.Type.Valid())
		})
	}
}
