package gen

import (
	"fmt"
	"strings"
)

// ParseAttribute parses one free-text attribute line into a named, typed
// field. Three surface forms are accepted, tried in order:
//
//  1. "name: Type", split on the first colon.
//  2. "Type name", two tokens where the first reads as a type.
//  3. Anything else: the whole line becomes the field name, typed text.
//
// Blank lines synthesize a "field_<index+1>" name with the text type. The
// function is total: any input yields a well-formed field, never an error.
func ParseAttribute(line string, index int) *Field {
	fallback := fmt.Sprintf("field_%d", index+1)
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return &Field{Name: fallback, Type: TypeText}
	}
	if name, typ, ok := strings.Cut(trimmed, ":"); ok {
		return &Field{
			Name: ToCamel(Sanitize(strings.TrimSpace(name), fallback)),
			Type: ResolveType(typ),
		}
	}
	if tokens := strings.Fields(trimmed); len(tokens) == 2 && isTypeToken(tokens[0]) {
		return &Field{
			Name: ToCamel(Sanitize(tokens[1], fallback)),
			Type: ResolveType(tokens[0]),
		}
	}
	return &Field{
		Name: ToCamel(Sanitize(trimmed, fallback)),
		Type: TypeText,
	}
}
