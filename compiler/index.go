package compiler

import (
	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
)

// KindCount is how often one block type occurs in the workspace and how
// many of those occurrences are effectively enabled.
type KindCount struct {
	Count   int
	Enabled int
}

// Index is built once per pass, before any generator runs, so dependency
// checks are map lookups instead of rescans of the whole tree.
type Index struct {
	kinds     map[string]*KindCount
	Arrays    map[string]int // array name -> declared element count (enabled array_init blocks)
	Functions map[string]int // function name -> enabled definitions
	Blocks    int
	Errors    diag.List
}

func newIndex() *Index {
	return &Index{
		kinds:     make(map[string]*KindCount),
		Arrays:    make(map[string]int),
		Functions: make(map[string]int),
		Errors:    diag.List{},
	}
}

// BuildIndex walks every top-level stack once. A block is effectively
// enabled when it and every block surrounding it are enabled; a block
// below another in a chain does not inherit its predecessor's state. Stacks
// whose head is not a root kind are never enabled.
func BuildIndex(ws *block.Workspace, isRoot func(typ string) bool) *Index {
	idx := newIndex()
	seen := make(map[*block.Block]struct{})
	for _, top := range ws.Blocks {
		idx.walkChain(top, isRoot(top.Type), seen)
	}
	return idx
}

func (idx *Index) walkChain(head *block.Block, parentEnabled bool, seen map[*block.Block]struct{}) {
	for cur := head; cur != nil; cur = cur.Next {
		if _, ok := seen[cur]; ok {
			idx.Errors = append(idx.Errors, &diag.Diagnostic{
				Kind:      diag.Cycle,
				Severity:  diag.Error,
				BlockID:   cur.ID,
				BlockType: cur.Type,
				Msg:       "block " + cur.Label() + " is reachable twice",
			})
			return
		}
		seen[cur] = struct{}{}
		enabled := parentEnabled && cur.Enabled()
		idx.add(cur, enabled)
		for _, slot := range cur.ValueSlots() {
			idx.walkChain(cur.Values[slot], enabled, seen)
		}
		for _, slot := range cur.StatementSlots() {
			idx.walkChain(cur.Statements[slot], enabled, seen)
		}
	}
}

func (idx *Index) add(b *block.Block, enabled bool) {
	idx.Blocks++
	kc, ok := idx.kinds[b.Type]
	if !ok {
		kc = &KindCount{}
		idx.kinds[b.Type] = kc
	}
	kc.Count++
	if !enabled {
		return
	}
	kc.Enabled++

	switch b.Type {
	case "array_init":
		// bad fields already fell back to their defaults
		f := arrayInit{}
		block.Decode(b, &f)
		idx.Arrays[arrayName(f.Name)] = f.Elements
	case "procedures_defnoreturn":
		f := procDef{}
		block.Decode(b, &f)
		idx.Functions[funcName(f.Name)]++
	}
}

// Lookup returns the counts for a block type.
func (idx *Index) Lookup(typ string) KindCount {
	if kc, ok := idx.kinds[typ]; ok {
		return *kc
	}
	return KindCount{}
}

// Present reports whether any block of typ exists, enabled or not.
func (idx *Index) Present(typ string) bool {
	return idx.Lookup(typ).Count > 0
}

// Enabled reports whether any block of typ is effectively enabled.
func (idx *Index) Enabled(typ string) bool {
	return idx.Lookup(typ).Enabled > 0
}

// RequireCompanion reports whether one of the companion types is present
// and enabled somewhere in the workspace.
func (g *Generator) RequireCompanion(companions ...string) bool {
	for _, c := range companions {
		if g.Index.Enabled(c) {
			return true
		}
	}
	return false
}

// Companion checks the requirement and, when it fails, records the
// diagnostic and returns the comment line that replaces the dependent
// call. An absent companion is an error; a present but disabled one is a
// warning.
func (g *Generator) Companion(dependent *block.Block, label string, companions ...string) (string, bool) {
	if g.RequireCompanion(companions...) {
		return "", true
	}
	for _, c := range companions {
		if g.Index.Present(c) {
			return g.Warn(dependent, diag.MissingDependency, "%s block is disabled!", label), false
		}
	}
	return g.Fail(dependent, diag.MissingDependency, "Missing %s block!", label), false
}
