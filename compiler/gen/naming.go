package gen

import (
	"strings"
	"unicode"
)

// Sanitize converts arbitrary user text into a safe program identifier.
// Every rune that is not a Unicode letter, digit, underscore, or currency
// symbol is replaced with an underscore. Identifiers may not start with a
// digit; an underscore is prefixed in that case. If the result is empty,
// fallback is returned instead.
func Sanitize(raw, fallback string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.Is(unicode.Sc, r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	s := b.String()
	if s == "" {
		return fallback
	}
	if r := []rune(s)[0]; unicode.IsDigit(r) {
		s = "_" + s
	}
	return s
}

// ToCamel lower-cases the first rune of an identifier. Results that collide
// with a Java reserved word get an underscore suffix, so "class" becomes
// "class_" rather than an unusable field name in the emitted source.
func ToCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	v := string(r)
	if _, ok := javaReserved[v]; ok {
		v += "_"
	}
	return v
}

// ToPascal upper-cases the first rune of an identifier.
func ToPascal(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Pluralize applies English pluralization heuristics in fixed priority
// order: -s/-sh/-ch/-x/-z take "es", consonant+y becomes "ies", -f and -fe
// become "ves", everything else takes "s". The rule set is intentionally
// closed; it governs collection field names and resource paths, so the same
// input must always produce the same output.
func Pluralize(s string) string {
	switch {
	case s == "":
		return s
	case hasSuffixAny(s, "s", "sh", "ch", "x", "z"):
		return s + "es"
	case strings.HasSuffix(s, "y") && consonantBefore(s, len(s)-1):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(s, "fe"):
		return s[:len(s)-2] + "ves"
	case strings.HasSuffix(s, "f"):
		return s[:len(s)-1] + "ves"
	default:
		return s + "s"
	}
}

func hasSuffixAny(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// consonantBefore reports whether the byte before index i is an ASCII
// consonant. A single-letter word has no preceding consonant, so "y" alone
// pluralizes to "ys".
func consonantBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	switch unicode.ToLower(rune(s[i-1])) {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	}
	return unicode.IsLetter(rune(s[i-1]))
}

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

// javaReserved holds the Java keywords and literals that can never be used
// as field or variable names in the emitted source.
var javaReserved = names(
	"abstract", "assert", "boolean", "break", "byte", "case", "catch",
	"char", "class", "const", "continue", "default", "do", "double",
	"else", "enum", "extends", "final", "finally", "float", "for",
	"goto", "if", "implements", "import", "instanceof", "int",
	"interface", "long", "native", "new", "package", "private",
	"protected", "public", "return", "short", "static", "strictfp",
	"super", "switch", "synchronized", "this", "throw", "throws",
	"transient", "try", "void", "volatile", "while",
	"true", "false", "null",
)
