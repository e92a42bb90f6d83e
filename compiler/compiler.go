package compiler

import (
	"fmt"
	"strings"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/board"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/token"
)

const INDENT = "  "

// Fragment is what a block generator returns: either a statement (text
// ending in a terminator, a closing brace or a comment) or an expression
// together with the precedence it was built at.
type Fragment struct {
	Code  string
	Order token.Order
	Value bool
}

// Stmt wraps statement text.
func Stmt(code string) Fragment {
	return Fragment{Code: code, Order: token.NONE}
}

// Expr wraps expression text built at the given precedence.
func Expr(code string, order token.Order) Fragment {
	return Fragment{Code: code, Order: order, Value: true}
}

// Generator holds all state of one generation pass. It is created empty
// for each pass, threaded through every block generator and discarded once
// the source is assembled; it must not be reused.
type Generator struct {
	Board       *board.Profile
	Includes    *Table // #include directives and #defines
	Globals     *Table // global variables and objects
	Setups      *Table // one-time calls at the top of main
	Methods     *Table // helper function bodies
	MethodDecls *Table // helper forward declarations
	Vars        *VarTable
	Index       *Index
	Diagnostics diag.List

	registry  *Registry
	strLen    int
	scopes    []Scope[string]
	active    map[*block.Block]struct{}
	mainBody  string
	mainFound bool
	tmpCount  int
	finished  bool
}

func NewGenerator(opts Options) *Generator {
	opts = opts.withDefaults()
	return &Generator{
		Board:       opts.Board,
		Includes:    NewTable("includes"),
		Globals:     NewTable("globals"),
		Setups:      NewTable("setups"),
		Methods:     NewTable("methods"),
		MethodDecls: NewTable("method declarations"),
		Vars:        NewVarTable(opts.Registry.helpers),
		Index:       newIndex(),
		Diagnostics: diag.List{},
		registry:    opts.Registry,
		strLen:      opts.StrLen,
		scopes:      []Scope[string]{NewScope[string](FuncScope)},
		active:      make(map[*block.Block]struct{}),
	}
}

// BlockToCode dispatches one block to its generator. Disabled blocks give
// an empty statement; unknown types give a warning comment.
func (g *Generator) BlockToCode(b *block.Block) Fragment {
	if g.finished {
		panic("compiler: generator reused after its pass completed")
	}
	if b == nil || !b.Enabled() {
		return Stmt("")
	}
	if _, ok := g.active[b]; ok {
		return Stmt(g.Fail(b, diag.Cycle, "block %s contains itself", b.Label()))
	}
	gen, ok := g.registry.gens[b.Type]
	if !ok {
		return Stmt(g.Warn(b, diag.UnknownBlock, "unknown block type %q", b.Type))
	}
	g.active[b] = struct{}{}
	defer delete(g.active, b)
	return gen(g, b)
}

// StatementToCode emits the chain in the named statement input, indented
// one level. A missing input gives an empty string.
func (g *Generator) StatementToCode(b *block.Block, slot string) string {
	code := g.chainToCode(b.Statement(slot))
	if code == "" {
		return ""
	}
	return Indent(code, INDENT)
}

func (g *Generator) chainToCode(head *block.Block) string {
	lines := []string{}
	seen := map[*block.Block]struct{}{}
	for cur := head; cur != nil; cur = cur.Next {
		if _, ok := seen[cur]; ok {
			lines = append(lines, g.Fail(cur, diag.Cycle, "statement chain loops back to %s", cur.Label()))
			break
		}
		seen[cur] = struct{}{}
		if !cur.Enabled() {
			continue
		}
		frag := g.BlockToCode(cur)
		code := frag.Code
		if frag.Value && code != "" {
			// a value block dropped into a statement slot is evaluated for its effect
			code += ";"
		}
		if code != "" {
			lines = append(lines, code)
		}
	}
	return strings.Join(lines, "\n")
}

// ValueToCode emits the expression in the named value input, wrapped in
// parentheses if it binds looser than order. A missing or disabled input
// gives "0".
func (g *Generator) ValueToCode(b *block.Block, slot string, order token.Order) string {
	return g.ValueOr(b, slot, order, "0")
}

// ValueOr is ValueToCode with an explicit fallback literal.
func (g *Generator) ValueOr(b *block.Block, slot string, order token.Order, fallback string) string {
	frag, ok := g.valueFragment(b, slot)
	if !ok {
		return fallback
	}
	return Wrap(frag, order)
}

// ValueFragment emits the named value input once and returns it unwrapped
// so the caller can place it at several precedences.
func (g *Generator) ValueFragment(b *block.Block, slot, fallback string) Fragment {
	if frag, ok := g.valueFragment(b, slot); ok {
		return frag
	}
	return Expr(fallback, token.ATOMIC)
}

func (g *Generator) valueFragment(b *block.Block, slot string) (Fragment, bool) {
	child := b.Value(slot)
	if child == nil || !child.Enabled() {
		return Fragment{}, false
	}
	frag := g.BlockToCode(child)
	if !frag.Value {
		if frag.Code != "" {
			g.Report(child, diag.BadField, diag.Warning, "statement block %s used as a value", child.Label())
		}
		return Fragment{}, false
	}
	if frag.Code == "" {
		return Fragment{}, false
	}
	return frag, true
}

// Wrap parenthesises frag if its order is weaker than required.
func Wrap(frag Fragment, required token.Order) string {
	if token.Needs(frag.Order, required) {
		return "(" + frag.Code + ")"
	}
	return frag.Code
}

// Indent prefixes every non-empty line of code.
func Indent(code, prefix string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// FreshName returns a generator-local temporary name like "__n0".
func (g *Generator) FreshName(prefix string) string {
	n := g.tmpCount
	g.tmpCount++
	return fmt.Sprintf("__%s%d", prefix, n)
}

// Report records a diagnostic without emitting anything.
func (g *Generator) Report(b *block.Block, kind diag.Kind, sev diag.Severity, format string, args ...any) *diag.Diagnostic {
	d := &diag.Diagnostic{
		Kind:     kind,
		Severity: sev,
		Msg:      fmt.Sprintf(format, args...),
	}
	if b != nil {
		d.BlockID = b.ID
		d.BlockType = b.Type
	}
	g.Diagnostics = append(g.Diagnostics, d)
	return d
}

// Fail records an error and returns the "// ERROR:" line that stands in
// for the block's code.
func (g *Generator) Fail(b *block.Block, kind diag.Kind, format string, args ...any) string {
	return g.Report(b, kind, diag.Error, format, args...).Comment()
}

// Warn records a warning and returns its "// WARNING:" line.
func (g *Generator) Warn(b *block.Block, kind diag.Kind, format string, args ...any) string {
	return g.Report(b, kind, diag.Warning, format, args...).Comment()
}

// FailValue is Fail for value blocks: a line comment cannot sit inside an
// expression, so the fallback literal is returned with a block comment.
func (g *Generator) FailValue(b *block.Block, fallback string, kind diag.Kind, format string, args ...any) Fragment {
	d := g.Report(b, kind, diag.Error, format, args...)
	return Expr(commentValue(fallback, d.Comment()), token.ATOMIC)
}

// commentValue turns a "// ..." line into "fallback /* ... */". A "*/"
// in the text is broken up so it cannot end the comment early.
func commentValue(fallback, comment string) string {
	if comment == "" {
		return fallback
	}
	text := strings.ReplaceAll(strings.TrimPrefix(comment, "// "), "*/", "* /")
	return fallback + " /* " + text + " */"
}

// AddInclude registers a header once. Standard C headers use angle brackets.
func (g *Generator) AddInclude(header string) {
	if strings.HasPrefix(header, "#") {
		g.Includes.Put(header, header)
		return
	}
	if stdHeaders[header] {
		g.Includes.Put(header, "#include <"+header+">")
		return
	}
	g.Includes.Put(header, `#include "`+header+`"`)
}

var stdHeaders = map[string]bool{
	"math.h":    true,
	"stdbool.h": true,
	"stdlib.h":  true,
	"stdio.h":   true,
	"string.h":  true,
	"stdint.h":  true,
}

// AddMethod registers a helper function body and its forward declaration
// under one key.
func (g *Generator) AddMethod(key, decl, body string) {
	if decl != "" {
		g.MethodDecls.Put(key, decl)
	}
	g.Methods.Put(key, body)
}

// enterLoop opens a loop or switch frame for break/continue checks.
func (g *Generator) enterLoop(kind string) {
	PushScope(&g.scopes, BlockScope)
	Put(g.scopes, kind, kind)
}

func (g *Generator) enterFunc(name string) {
	PushScope(&g.scopes, FuncScope)
	Put(g.scopes, "func", name)
}

func (g *Generator) leave() {
	PopScope(&g.scopes)
}

func (g *Generator) inScope(kind string) bool {
	_, ok := Get(g.scopes, kind)
	return ok
}
