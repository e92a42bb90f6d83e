package types

import (
	"fmt"
	"strings"
)

// SafeName turns an editor variable or function name into a C identifier.
// ASCII letters, digits and underscores pass through; spaces and dashes
// become underscores; any other rune is spelled as u<hex>. A leading digit
// gets an underscore prefix and reserved names get a trailing underscore.
func SafeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "_unnamed"
	}
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '.':
			sb.WriteByte('_')
		default:
			fmt.Fprintf(&sb, "u%04X", r)
		}
	}
	out := sb.String()
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	if IsReserved(out) {
		out += "_"
	}
	return out
}
