package gen

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// JavaType is the canonical scalar type an attribute resolves to. The zero
// value is TypeText, which doubles as the resolver's safe default for
// unrecognized tokens.
type JavaType int

const (
	TypeText JavaType = iota
	TypeInteger
	TypeLong
	TypeFloating
	TypeDecimal
	TypeBoolean
	TypeDate
	TypeDateTime
	TypeUUID
	endTypes
)

var typeNames = [...]string{
	TypeText:     "text",
	TypeInteger:  "integer",
	TypeLong:     "long",
	TypeFloating: "floating",
	TypeDecimal:  "decimal",
	TypeBoolean:  "boolean",
	TypeDate:     "date",
	TypeDateTime: "datetime",
	TypeUUID:     "uuid",
}

var javaNames = [...]string{
	TypeText:     "String",
	TypeInteger:  "Integer",
	TypeLong:     "Long",
	TypeFloating: "Double",
	TypeDecimal:  "BigDecimal",
	TypeBoolean:  "Boolean",
	TypeDate:     "LocalDate",
	TypeDateTime: "LocalDateTime",
	TypeUUID:     "UUID",
}

var javaImports = [...]string{
	TypeDecimal:  "java.math.BigDecimal",
	TypeDate:     "java.time.LocalDate",
	TypeDateTime: "java.time.LocalDateTime",
	TypeUUID:     "java.util.UUID",
}

// String returns the canonical type name.
func (t JavaType) String() string {
	if t < 0 || t >= endTypes {
		return "invalid"
	}
	return typeNames[t]
}

// Valid reports if the given type is a known canonical type.
func (t JavaType) Valid() bool {
	return t >= 0 && t < endTypes
}

// Java returns the boxed Java type name used in emitted source.
func (t JavaType) Java() string {
	if !t.Valid() {
		return javaNames[TypeText]
	}
	return javaNames[t]
}

// Import returns the Java import the type requires, or an empty string for
// java.lang types that need none.
func (t JavaType) Import() string {
	if !t.Valid() {
		return ""
	}
	return javaImports[t]
}

// Numeric reports whether the type maps to a numeric Java type.
func (t JavaType) Numeric() bool {
	switch t {
	case TypeInteger, TypeLong, TypeFloating, TypeDecimal:
		return true
	}
	return false
}

// Sample returns the JSON literal used for this type in generated request
// bodies: 1 for integers, 1.0 for fractional numbers, true for booleans,
// and a quoted "sample_<field>" string for everything else.
func (t JavaType) Sample(field string) string {
	switch t {
	case TypeInteger, TypeLong:
		return "1"
	case TypeFloating, TypeDecimal:
		return "1.0"
	case TypeBoolean:
		return "true"
	default:
		return fmt.Sprintf("%q", "sample_"+field)
	}
}

// typeTable maps case-folded user tokens to canonical types. The table is a
// closed set fixed at compile time; it is never extended at runtime.
var typeTable = map[string]JavaType{
	"string":  TypeText,
	"str":     TypeText,
	"text":    TypeText,
	"char":    TypeText,
	"varchar": TypeText,

	"int":     TypeInteger,
	"integer": TypeInteger,
	"number":  TypeInteger,
	"byte":    TypeInteger,
	"short":   TypeInteger,

	"long":   TypeLong,
	"bigint": TypeLong,

	"float":  TypeFloating,
	"double": TypeFloating,
	"real":   TypeFloating,

	"decimal":    TypeDecimal,
	"numeric":    TypeDecimal,
	"money":      TypeDecimal,
	"currency":   TypeDecimal,
	"bigdecimal": TypeDecimal,

	"bool":    TypeBoolean,
	"boolean": TypeBoolean,

	"date":      TypeDate,
	"localdate": TypeDate,

	"datetime":      TypeDateTime,
	"timestamp":     TypeDateTime,
	"localdatetime": TypeDateTime,

	"uuid": TypeUUID,
	"guid": TypeUUID,
}

// ResolveType maps a free-text type token to its canonical type. Lookup is
// case-insensitive via Unicode case folding. Unrecognized tokens resolve to
// TypeText; this is a deliberate safe default, never an error.
func ResolveType(token string) JavaType {
	token = strings.TrimSpace(token)
	if token == "" {
		return TypeText
	}
	if t, ok := typeTable[cases.Fold().String(token)]; ok {
		return t
	}
	return TypeText
}

// isTypeToken reports whether the token reads as a type in the "Type name"
// attribute form: a known synonym or a capitalized identifier such as a
// class name.
func isTypeToken(token string) bool {
	if token == "" {
		return false
	}
	if _, ok := typeTable[cases.Fold().String(token)]; ok {
		return true
	}
	return unicode.IsUpper([]rune(token)[0])
}
