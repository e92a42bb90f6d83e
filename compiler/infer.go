package compiler

import (
	"strconv"

	"github.com/thiremani/blockc/lexer"
	"github.com/thiremani/blockc/token"
	"github.com/thiremani/blockc/types"
)

// VarRecord is what the generator knows about one user variable.
type VarRecord struct {
	Name     string // C identifier
	Type     types.Kind
	Length   int  // element count for Char; 0 means not known yet
	Explicit bool // declared with a type by a declaration block
}

// VarTable maps variable names to their inferred type. A record is created
// by the first assignment seen and may change on later ones.
type VarTable struct {
	order   []string
	vars    map[string]*VarRecord
	helpers map[string]types.Kind
}

func NewVarTable(helpers map[string]types.Kind) *VarTable {
	return &VarTable{
		vars:    make(map[string]*VarRecord),
		helpers: helpers,
	}
}

// Inference is the result of testing one right-hand side.
type Inference struct {
	Type    types.Kind
	Length  int  // for string literals: bytes including the terminator
	Matched bool // false when nothing matched and int was assumed
}

// Infer runs the ordered type tests over generated expression text: a
// float helper call, a char helper call, a quoted string literal, a
// decimal number, a boolean literal. The first test that matches decides;
// if none does the type is int.
func Infer(rhs string, helpers map[string]types.Kind) Inference {
	toks := lexer.Tokens(rhs)

	if callOf(toks, helpers, types.Float) || floatCast(toks) {
		return Inference{Type: types.Float, Matched: true}
	}
	if callOf(toks, helpers, types.Char) {
		return Inference{Type: types.Char, Matched: true}
	}
	if callOf(toks, helpers, types.CharPtr) {
		return Inference{Type: types.CharPtr, Matched: true}
	}
	for _, t := range toks {
		if t.Type == token.STRING {
			return Inference{Type: types.Char, Length: literalLen(t.Literal) + 1, Matched: true}
		}
	}
	for _, t := range toks {
		if t.Type == token.FLOAT {
			return Inference{Type: types.Float, Matched: true}
		}
	}
	for _, t := range toks {
		if t.Type == token.IDENT && (t.Literal == "true" || t.Literal == "false") {
			return Inference{Type: types.Bool, Matched: true}
		}
	}
	return Inference{Type: types.Int}
}

// callOf reports whether toks contain a call to a helper returning kind.
func callOf(toks []token.Token, helpers map[string]types.Kind, kind types.Kind) bool {
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].Type != token.IDENT || toks[i+1].Type != token.LPAREN {
			continue
		}
		if k, ok := helpers[toks[i].Literal]; ok && k == kind {
			return true
		}
	}
	return false
}

// floatCast matches "(float)".
func floatCast(toks []token.Token) bool {
	for i := 0; i+2 < len(toks); i++ {
		if toks[i].Type == token.LPAREN && toks[i+1].Literal == "float" && toks[i+2].Type == token.RPAREN {
			return true
		}
	}
	return false
}

// literalLen counts the bytes a quoted C literal occupies without its
// terminator, treating each escape sequence as one byte.
func literalLen(quoted string) int {
	if s, err := strconv.Unquote(quoted); err == nil {
		return len(s)
	}
	n := 0
	body := quoted[1 : len(quoted)-1]
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' {
			i++
		}
		n++
	}
	return n
}

// Observe records an assignment of rhs to name and returns the updated
// record. The first assignment creates the record. A later assignment
// whose text carries a real type signal overwrites the recorded type, so
// the last such assignment in traversal order decides the declaration; an
// assignment that only defaulted to int leaves the record alone. Char
// buffers keep the longest length seen. Explicitly declared variables
// never change type.
func (vt *VarTable) Observe(name, rhs string) (*VarRecord, Inference) {
	inf := Infer(rhs, vt.helpers)
	rec, ok := vt.vars[name]
	if !ok {
		rec = &VarRecord{Name: name, Type: inf.Type, Length: inf.Length}
		vt.put(rec)
		return rec, inf
	}
	if rec.Explicit || !inf.Matched {
		return rec, inf
	}
	if rec.Type == types.Char && inf.Type == types.Char {
		rec.Length = max(rec.Length, inf.Length)
		return rec, inf
	}
	rec.Type = inf.Type
	rec.Length = inf.Length
	return rec, inf
}

// Declare fixes a variable's type. length is used for Char only.
func (vt *VarTable) Declare(name string, kind types.Kind, length int) *VarRecord {
	rec, ok := vt.vars[name]
	if !ok {
		rec = &VarRecord{Name: name}
		vt.put(rec)
	}
	rec.Type = kind
	rec.Length = length
	rec.Explicit = true
	return rec
}

// Use makes sure a variable read before any assignment is still declared.
func (vt *VarTable) Use(name string) *VarRecord {
	if rec, ok := vt.vars[name]; ok {
		return rec
	}
	rec := &VarRecord{Name: name, Type: types.Int}
	vt.put(rec)
	return rec
}

func (vt *VarTable) put(rec *VarRecord) {
	vt.order = append(vt.order, rec.Name)
	vt.vars[rec.Name] = rec
}

func (vt *VarTable) Get(name string) (*VarRecord, bool) {
	rec, ok := vt.vars[name]
	return rec, ok
}

// Records returns the variables in first-seen order.
func (vt *VarTable) Records() []*VarRecord {
	out := make([]*VarRecord, 0, len(vt.order))
	for _, n := range vt.order {
		out = append(out, vt.vars[n])
	}
	return out
}

// ExprType is the best guess of a rendered expression's type: a bare
// variable reference takes the variable's recorded type, anything else is
// inferred from its text.
func (g *Generator) ExprType(code string) types.Kind {
	toks := lexer.Tokens(code)
	if len(toks) == 1 && toks[0].Type == token.IDENT {
		if rec, ok := g.Vars.Get(toks[0].Literal); ok {
			return rec.Type
		}
	}
	return Infer(code, g.Vars.helpers).Type
}
