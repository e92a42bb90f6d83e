package compiler

import (
	"strings"
)

const (
	markerOpen  = "{{"
	markerClose = "}}"
	lenPrefix   = "$len:"
)

// LenPlaceholder is the token written in place of a char buffer's length
// until the assembler knows it.
func LenPlaceholder(name string) string {
	return markerOpen + lenPrefix + name + markerClose
}

// parseMarker attempts to parse a marker starting at index i in s, which
// must point at "{{". It returns the marker key and the index just past
// the marker, or ok=false if there is no closing "}}" or the key is
// empty or spans a line.
func parseMarker(s string, i int) (key string, next int, ok bool) {
	start := i + len(markerOpen)
	end := strings.Index(s[start:], markerClose)
	if end <= 0 {
		return "", i, false
	}
	key = s[start : start+end]
	if strings.ContainsAny(key, "\n{}") {
		return "", i, false
	}
	return strings.TrimSpace(key), start + end + len(markerClose), true
}

// Expand replaces every "{{key}}" marker in s with lookup(key). Markers
// the lookup does not know are kept verbatim and returned in missing.
// Substituted text is not rescanned.
func Expand(s string, lookup func(key string) (string, bool)) (out string, missing []string) {
	if !strings.Contains(s, markerOpen) {
		return s, nil
	}
	var builder strings.Builder
	i := 0
	for i < len(s) {
		if strings.HasPrefix(s[i:], markerOpen) {
			key, next, ok := parseMarker(s, i)
			if ok {
				if val, found := lookup(key); found {
					builder.WriteString(val)
				} else {
					builder.WriteString(s[i:next])
					missing = append(missing, key)
				}
				i = next
				continue
			}
		}
		builder.WriteByte(s[i])
		i++
	}
	return builder.String(), missing
}

// ExpandLengths substitutes the length placeholders only; other markers
// are left alone and not reported.
func ExpandLengths(s string, length func(name string) (string, bool)) (out string, unresolved []string) {
	out, missing := Expand(s, func(key string) (string, bool) {
		name, ok := strings.CutPrefix(key, lenPrefix)
		if !ok {
			return "", false
		}
		return length(name)
	})
	for _, key := range missing {
		if name, ok := strings.CutPrefix(key, lenPrefix); ok {
			unresolved = append(unresolved, name)
		}
	}
	return out, unresolved
}

// HasPlaceholder reports whether any length placeholder is left in s.
func HasPlaceholder(s string) bool {
	return strings.Contains(s, markerOpen+lenPrefix)
}

// quoteC renders text as a C string literal. A literal "{{$" is broken
// with an octal escape so user text can never be mistaken for a placeholder.
func quoteC(text string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '$':
			if strings.HasSuffix(b.String(), "{{") {
				b.WriteString(`\044`)
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
