package types

// C keywords plus identifiers owned by the simpletools runtime. A user
// variable with one of these names would shadow or break the generated
// translation unit.
var reservedNames = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"inline", "int", "long", "register", "restrict", "return", "short",
	"signed", "sizeof", "static", "struct", "switch", "typedef", "union",
	"unsigned", "void", "volatile", "while", "bool", "true", "false",
	"_Bool", "NULL",
	"main", "high", "low", "toggle", "input", "pause", "print", "printi",
	"freqout", "constrainInt", "memcpy", "strcpy", "strlen", "sprint",
	"servo_angle", "sound_run", "ee_putInt", "ee_getInt",
}

var reservedSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(reservedNames))
	for _, t := range reservedNames {
		m[t] = struct{}{}
	}
	return m
}()

// ReservedNames returns a copy of the identifiers user names may not take.
func ReservedNames() []string {
	return append([]string(nil), reservedNames...)
}

// IsReserved reports whether name is a C keyword or a runtime identifier.
func IsReserved(name string) bool {
	_, ok := reservedSet[name]
	return ok
}
