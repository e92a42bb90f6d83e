package block

// New returns a block of the given type with alternating field name/value
// pairs. It is meant for tests and for programmatic workspaces.
func New(typ string, fields ...string) *Block {
	b := &Block{Type: typ}
	for i := 0; i+1 < len(fields); i += 2 {
		if b.Fields == nil {
			b.Fields = map[string]string{}
		}
		b.Fields[fields[i]] = fields[i+1]
	}
	return b
}

// Chain links blocks through Next in order and returns the head.
func Chain(blocks ...*Block) *Block {
	if len(blocks) == 0 {
		return nil
	}
	for i := 0; i+1 < len(blocks); i++ {
		blocks[i].Next = blocks[i+1]
	}
	return blocks[0]
}

// WithValue plugs child into the named value input and returns b.
func (b *Block) WithValue(slot string, child *Block) *Block {
	if b.Values == nil {
		b.Values = map[string]*Block{}
	}
	b.Values[slot] = child
	return b
}

// WithStatement sets the head of the named statement input and returns b.
func (b *Block) WithStatement(slot string, head *Block) *Block {
	if b.Statements == nil {
		b.Statements = map[string]*Block{}
	}
	b.Statements[slot] = head
	return b
}

// WithMutation records extra per-instance shape and returns b.
func (b *Block) WithMutation(key, value string) *Block {
	if b.Mutation == nil {
		b.Mutation = map[string]string{}
	}
	b.Mutation[key] = value
	return b
}

// Disable switches the block off and returns it.
func (b *Block) Disable() *Block {
	b.Disabled = true
	return b
}
