package block

import (
	"sort"
	"strings"
)

// Block is one node of the visual program tree as produced by the editor.
// The generator only reads blocks; nothing in this module mutates them
// after decoding.
type Block struct {
	ID         string            `yaml:"id,omitempty" json:"id,omitempty"`
	Type       string            `yaml:"type" json:"type"`
	Disabled   bool              `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Fields     map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
	Mutation   map[string]string `yaml:"mutation,omitempty" json:"mutation,omitempty"`
	Values     map[string]*Block `yaml:"values,omitempty" json:"values,omitempty"`
	Statements map[string]*Block `yaml:"statements,omitempty" json:"statements,omitempty"`
	Next       *Block            `yaml:"next,omitempty" json:"next,omitempty"`
}

// Enabled reports whether the block itself is switched on. Inherited
// disabled state is resolved by the compiler's index pass.
func (b *Block) Enabled() bool {
	return b != nil && !b.Disabled
}

// Value returns the child plugged into the named value input, or nil.
func (b *Block) Value(slot string) *Block {
	if b == nil {
		return nil
	}
	return b.Values[slot]
}

// Statement returns the head of the chain in the named statement input, or nil.
func (b *Block) Statement(slot string) *Block {
	if b == nil {
		return nil
	}
	return b.Statements[slot]
}

// ValueSlots returns the value input names in a stable order.
func (b *Block) ValueSlots() []string {
	return sortedKeys(b.Values)
}

// StatementSlots returns the statement input names in a stable order.
func (b *Block) StatementSlots() []string {
	return sortedKeys(b.Statements)
}

// Label is used in diagnostics: "pin_high#b3".
func (b *Block) Label() string {
	if b == nil {
		return "<nil>"
	}
	if b.ID == "" {
		return b.Type
	}
	return b.Type + "#" + b.ID
}

func (b *Block) String() string {
	var out strings.Builder
	b.write(&out, "")
	return out.String()
}

func (b *Block) write(out *strings.Builder, indent string) {
	for cur := b; cur != nil; cur = cur.Next {
		out.WriteString(indent)
		out.WriteString(cur.Type)
		if cur.Disabled {
			out.WriteString(" (disabled)")
		}
		for _, k := range sortedKeys(cur.Fields) {
			out.WriteString(" " + k + "=" + cur.Fields[k])
		}
		out.WriteString("\n")
		for _, slot := range cur.ValueSlots() {
			if child := cur.Values[slot]; child != nil {
				out.WriteString(indent + "  <" + slot + ">\n")
				child.write(out, indent+"    ")
			}
		}
		for _, slot := range cur.StatementSlots() {
			if child := cur.Statements[slot]; child != nil {
				out.WriteString(indent + "  {" + slot + "}\n")
				child.write(out, indent+"    ")
			}
		}
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
