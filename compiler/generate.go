package compiler

import (
	"strconv"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/board"
	"github.com/thiremani/blockc/diag"
)

const DefaultStrLen = 64

// Options configure one generation pass.
type Options struct {
	Board    *board.Profile // nil selects the workspace's board
	StrLen   int            // default char buffer length, 0 means DefaultStrLen
	Registry *Registry      // nil selects Builtins()
}

func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = Builtins()
	}
	if o.StrLen <= 0 {
		o.StrLen = DefaultStrLen
	}
	if o.Board == nil {
		o.Board, _ = board.Builtin(board.Default)
	}
	return o
}

// Result is the outcome of one pass. Source is always a complete
// translation unit, even when Diagnostics holds errors.
type Result struct {
	Source      string
	Diagnostics diag.List
	Vars        []*VarRecord
}

// Generate compiles a workspace to C source. Every call starts from
// fresh tables; nothing survives between calls.
func Generate(ws *block.Workspace, opts Options) *Result {
	var boardErr *diag.Diagnostic
	if opts.Board == nil {
		p, err := board.Lookup(ws.Board)
		if err != nil {
			boardErr = &diag.Diagnostic{Kind: diag.Unsupported, Severity: diag.Error, Msg: err.Error() + ", using " + board.Default}
		} else {
			opts.Board = p
		}
	}
	g := NewGenerator(opts)
	if boardErr != nil {
		g.Diagnostics = append(g.Diagnostics, boardErr)
	}
	g.Index = BuildIndex(ws, g.registry.IsRoot)
	g.Diagnostics = append(g.Diagnostics, g.Index.Errors...)

	for _, h := range g.Board.Includes {
		g.AddInclude(h)
	}
	for i, s := range g.Board.Setup {
		g.Setups.Put("board:"+g.Board.Name+":"+strconv.Itoa(i), s)
	}

	for _, top := range ws.Blocks {
		if !g.registry.IsRoot(top.Type) {
			g.Report(top, diag.Unsupported, diag.Warning, "%s is not inside the main block or a function and is ignored", top.Label())
			continue
		}
		g.BlockToCode(top)
	}
	if !g.mainFound {
		g.mainBody = Indent(g.Fail(nil, diag.MissingDependency, "Missing main program block!"), INDENT)
	}

	src := g.Assemble(g.mainBody)
	return &Result{Source: src, Diagnostics: g.Diagnostics, Vars: g.Vars.Records()}
}
