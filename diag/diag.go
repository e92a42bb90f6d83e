package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic. None of them stop generation.
type Kind int

const (
	MissingDependency Kind = iota // companion block absent or disabled
	OutOfRange                    // numeric value outside the hardware range
	AmbiguousType                 // no inference rule matched, int assumed
	UnresolvedLength              // a length placeholder survived assembly
	UnknownBlock                  // no generator registered for a block type
	BadField                      // a field could not be read as its declared type
	Cycle                         // a statement chain loops back on itself
	Unsupported                   // block is valid but not usable on this board
)

var kindNames = [...]string{
	MissingDependency: "missing-dependency",
	OutOfRange:        "out-of-range",
	AmbiguousType:     "ambiguous-type",
	UnresolvedLength:  "unresolved-length",
	UnknownBlock:      "unknown-block",
	BadField:          "bad-field",
	Cycle:             "cycle",
	Unsupported:       "unsupported",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	default:
		return "INFO"
	}
}

// Diagnostic is a problem found while generating one block.
type Diagnostic struct {
	Kind      Kind
	Severity  Severity
	BlockID   string
	BlockType string
	Msg       string
}

func (d *Diagnostic) Error() string {
	loc := d.BlockType
	if d.BlockID != "" {
		loc += "#" + d.BlockID
	}
	if loc == "" {
		return fmt.Sprintf("%s [%s]: %s", d.Severity, d.Kind, d.Msg)
	}
	return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Kind, loc, d.Msg)
}

// Comment renders the inline marker that replaces a call in the output.
// Info diagnostics have no inline form.
func (d *Diagnostic) Comment() string {
	if d.Severity == Info {
		return ""
	}
	return "// " + d.Severity.String() + ": " + oneLine(d.Msg)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// List is an ordered collection of diagnostics.
type List []*Diagnostic

// Filter returns the diagnostics of the given kind.
func (l List) Filter(k Kind) List {
	out := List{}
	for _, d := range l {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Max is the highest severity present, or Info for an empty list.
func (l List) Max() Severity {
	max := Info
	for _, d := range l {
		if d.Severity > max {
			max = d.Severity
		}
	}
	return max
}

// Messages returns the Msg of every diagnostic, handy in assertions.
func (l List) Messages() []string {
	out := make([]string, 0, len(l))
	for _, d := range l {
		out = append(out, d.Msg)
	}
	return out
}
