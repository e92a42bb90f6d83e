package block

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Workspace is the whole editor canvas: every top-level stack plus the
// board the program targets.
type Workspace struct {
	Name   string   `yaml:"name,omitempty" json:"name,omitempty"`
	Board  string   `yaml:"board,omitempty" json:"board,omitempty"`
	Blocks []*Block `yaml:"blocks" json:"blocks"`
}

// NewWorkspace wraps top-level stacks and numbers their blocks.
func NewWorkspace(board string, blocks ...*Block) *Workspace {
	ws := &Workspace{Board: board, Blocks: blocks}
	ws.AssignIDs()
	return ws
}

// Parse reads a workspace from YAML. JSON documents are accepted as well
// since they are valid YAML flow documents.
func Parse(data []byte) (*Workspace, error) {
	ws := &Workspace{}
	if err := yaml.Unmarshal(data, ws); err != nil {
		return nil, fmt.Errorf("decode workspace: %w", err)
	}
	for i, b := range ws.Blocks {
		if b == nil {
			return nil, fmt.Errorf("decode workspace: top-level block %d is empty", i)
		}
	}
	ws.AssignIDs()
	return ws, nil
}

// Load reads and parses the workspace file at path.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workspace %s: %w", path, err)
	}
	ws, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ws, nil
}

// AssignIDs gives every block without an ID a stable one ("b1", "b2", ...)
// in depth-first order so diagnostics can point at a block.
func (ws *Workspace) AssignIDs() {
	n := 0
	seen := map[*Block]struct{}{}
	var visit func(b *Block)
	visit = func(b *Block) {
		for cur := b; cur != nil; cur = cur.Next {
			if _, ok := seen[cur]; ok {
				return
			}
			seen[cur] = struct{}{}
			n++
			if cur.ID == "" {
				cur.ID = "b" + strconv.Itoa(n)
			}
			for _, slot := range cur.ValueSlots() {
				visit(cur.Values[slot])
			}
			for _, slot := range cur.StatementSlots() {
				visit(cur.Statements[slot])
			}
		}
	}
	for _, b := range ws.Blocks {
		visit(b)
	}
}

// Count returns the number of distinct blocks reachable from the workspace.
func (ws *Workspace) Count() int {
	seen := map[*Block]struct{}{}
	var visit func(b *Block)
	visit = func(b *Block) {
		for cur := b; cur != nil; cur = cur.Next {
			if _, ok := seen[cur]; ok {
				return
			}
			seen[cur] = struct{}{}
			for _, child := range cur.Values {
				visit(child)
			}
			for _, child := range cur.Statements {
				visit(child)
			}
		}
	}
	for _, b := range ws.Blocks {
		visit(b)
	}
	return len(seen)
}
