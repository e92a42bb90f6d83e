package compiler

import (
	"fmt"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/lexer"
	"github.com/thiremani/blockc/token"
)

// Range is an inclusive hardware-valid interval.
type Range struct {
	Min, Max int64
}

func (r Range) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Clamp(v int64) int64 {
	return min(max(v, r.Min), r.Max)
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// ClampCall wraps expr in the runtime clamp helper.
func ClampCall(expr string, r Range) string {
	return fmt.Sprintf("constrainInt(%s, %d, %d)", expr, r.Min, r.Max)
}

// IntLiteral reports whether code is a plain (optionally negative)
// integer literal and returns its value.
func IntLiteral(code string) (int64, bool) {
	toks := lexer.Tokens(code)
	neg := false
	if len(toks) == 2 && toks[0].Type == token.SUB {
		neg = true
		toks = toks[1:]
	}
	if len(toks) != 1 || toks[0].Type != token.INT {
		return 0, false
	}
	n, err := block.ParseInt(toks[0].Literal)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// ValueInRange emits the named value input so that it can only take values
// in r. A literal inside the range is emitted as is; a literal outside it
// is wrapped in the clamp helper and reported; any other expression is
// always wrapped because its value is only known at run time. The result
// is meant for argument position.
func (g *Generator) ValueInRange(b *block.Block, slot string, r Range, fallback string) string {
	code := g.ValueOr(b, slot, token.NONE, fallback)
	if n, ok := IntLiteral(code); ok {
		if r.Contains(n) {
			return code
		}
		g.Report(b, diag.OutOfRange, diag.Warning, "%s value %d is outside %s", slot, n, r)
	}
	return ClampCall(code, r)
}

// ClampField limits a numeric field to r at generation time.
func (g *Generator) ClampField(b *block.Block, field string, v int64, r Range) int64 {
	if r.Contains(v) {
		return v
	}
	c := r.Clamp(v)
	g.Report(b, diag.OutOfRange, diag.Warning, "%s value %d is outside %s, using %d", field, v, r, c)
	return c
}

// Pin validates a pin number against the board profile. When the pin does
// not exist the returned string is the comment that replaces the block.
func (g *Generator) Pin(b *block.Block, pin int) (string, bool) {
	if g.Board.HasPin(pin) {
		return "", true
	}
	return g.Fail(b, diag.Unsupported, "pin %d is not available on %s", pin, g.Board.Name), false
}

// Feature checks that the board has a piece of optional hardware.
func (g *Generator) Feature(b *block.Block, feature string) (string, bool) {
	if feature == "" || g.Board.Supports(feature) {
		return "", true
	}
	return g.Fail(b, diag.Unsupported, "%s is not supported by %s", feature, g.Board.Name), false
}
