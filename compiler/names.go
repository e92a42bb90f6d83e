package compiler

import (
	"fmt"
)

// ValidateKindName validates a block kind name before it is registered.
// Rules:
//   - ASCII lowercase letters, digits, and underscore only
//   - Must start with a letter
//   - No double underscores (__), those belong to generator temporaries
//   - No trailing underscores
func ValidateKindName(name string) error {
	if name == "" {
		return fmt.Errorf("kind name cannot be empty")
	}
	for i, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			return fmt.Errorf("uppercase letter %q at position %d: kind names must be lowercase", r, i)
		case r >= 'a' && r <= 'z':
			// valid
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("kind name %q starts with a digit", name)
			}
		case r == '_':
			if i == 0 {
				return fmt.Errorf("kind name %q starts with underscore", name)
			}
			if name[i-1] == '_' {
				return fmt.Errorf("double underscore at position %d", i)
			}
		default:
			return fmt.Errorf("invalid character %q at position %d in kind name", r, i)
		}
	}
	if name[len(name)-1] == '_' {
		return fmt.Errorf("kind name %q ends with underscore", name)
	}
	return nil
}
