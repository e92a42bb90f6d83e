package types

import "fmt"

// Kind is the underlying C type inferred for a user variable.
type Kind int

const (
	Int Kind = iota
	Float
	Char    // fixed-size char buffer: char name[len]
	CharPtr // char *name
	Bool
)

var kindNames = [...]string{
	Int:     "int",
	Float:   "float",
	Char:    "char",
	CharPtr: "char pointer",
	Bool:    "boolean",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Decl renders a global declaration for a variable of this kind. length is
// only used for Char and may be a literal count or a placeholder.
func (k Kind) Decl(name, length string) string {
	switch k {
	case Float:
		return "float " + name + ";"
	case Char:
		return "char " + name + "[" + length + "];"
	case CharPtr:
		return "char *" + name + ";"
	case Bool:
		return "bool " + name + ";"
	default:
		return "int " + name + ";"
	}
}

// Zero is the literal used when a value of this kind is missing.
func (k Kind) Zero() string {
	switch k {
	case Float:
		return "0.0"
	case Char, CharPtr:
		return `""`
	case Bool:
		return "false"
	default:
		return "0"
	}
}
