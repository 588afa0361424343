package gateway

import (
	"strings"
	"unicode"
)

// The core speaks camelCase, the row API speaks snake_case. Translation
// happens only in this package; the rest of the service never sees both
// conventions.

// ToSnakeCase converts a camelCase field name to snake_case.
func ToSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToCamelCase converts a snake_case field name to camelCase.
func ToCamelCase(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

func snakeKeys(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[ToSnakeCase(k)] = v
	}
	return out
}

func camelKeys(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[ToCamelCase(k)] = v
	}
	return out
}
