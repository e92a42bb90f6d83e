package compiler

import (
	"slices"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/token"
	"github.com/thiremani/blockc/types"
)

// GenFunc turns one block into a fragment. It may add entries to the
// generator's tables as a side effect.
type GenFunc func(g *Generator, b *block.Block) Fragment

// Kind describes one registered block type.
type Kind struct {
	Type   string
	Root   bool // may start a top-level stack (main, function definitions)
	Value  bool
	Fields []block.FieldSpec
	Source string // "builtin" or "template"
}

// Registry is the dispatch table from block type to generator.
type Registry struct {
	gens    map[string]GenFunc
	kinds   map[string]*Kind
	helpers map[string]types.Kind // helper call name -> return type, used by inference
}

func NewRegistry() *Registry {
	return &Registry{
		gens:    make(map[string]GenFunc),
		kinds:   make(map[string]*Kind),
		helpers: make(map[string]types.Kind),
	}
}

// Register installs fn for blocks of kind.Type, replacing any earlier one.
func (r *Registry) Register(kind Kind, fn GenFunc) {
	k := kind
	r.gens[kind.Type] = fn
	r.kinds[kind.Type] = &k
}

// Helper records the return type of a C helper so that assignments from
// calls to it infer the right variable type.
func (r *Registry) Helper(name string, ret types.Kind) {
	r.helpers[name] = ret
}

func (r *Registry) Has(typ string) bool {
	_, ok := r.gens[typ]
	return ok
}

func (r *Registry) IsRoot(typ string) bool {
	k, ok := r.kinds[typ]
	return ok && k.Root
}

// Kinds lists every registered kind sorted by type.
func (r *Registry) Kinds() []*Kind {
	out := make([]*Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b *Kind) int {
		switch {
		case a.Type < b.Type:
			return -1
		case a.Type > b.Type:
			return 1
		}
		return 0
	})
	return out
}

// Statement registers a statement generator over a typed field struct F.
func Statement[F any](r *Registry, typ string, fn func(g *Generator, b *block.Block, f *F) string) {
	r.Register(Kind{Type: typ, Fields: block.SchemaOf(new(F)), Source: "builtin"}, func(g *Generator, b *block.Block) Fragment {
		return Stmt(fn(g, b, decodeFields[F](g, b)))
	})
}

// Value registers an expression generator over a typed field struct F.
func Value[F any](r *Registry, typ string, fn func(g *Generator, b *block.Block, f *F) (string, token.Order)) {
	r.Register(Kind{Type: typ, Value: true, Fields: block.SchemaOf(new(F)), Source: "builtin"}, func(g *Generator, b *block.Block) Fragment {
		code, order := fn(g, b, decodeFields[F](g, b))
		return Expr(code, order)
	})
}

// Root registers a generator for a block that starts a top-level stack.
// Roots contribute through the tables; their own text is discarded.
func Root[F any](r *Registry, typ string, fn func(g *Generator, b *block.Block, f *F)) {
	r.Register(Kind{Type: typ, Root: true, Fields: block.SchemaOf(new(F)), Source: "builtin"}, func(g *Generator, b *block.Block) Fragment {
		fn(g, b, decodeFields[F](g, b))
		return Stmt("")
	})
}

// decodeFields reads b's typed fields. Bad values fall back to their
// declared default and are reported; generation goes on.
func decodeFields[F any](g *Generator, b *block.Block) *F {
	f := new(F)
	if err := block.Decode(b, f); err != nil {
		g.Report(b, diag.BadField, diag.Warning, "%v", err)
	}
	return f
}
