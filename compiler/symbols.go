package compiler

// Table is one of the generator's accumulation tables. It maps a resource
// key ("servo.h", "sound_start", "array:buf") to the fragment that
// provides it. The last write for a key wins; keys keep the position of
// their first insertion so output order is deterministic.
type Table struct {
	Name  string
	keys  []string
	elems map[string]string
}

func NewTable(name string) *Table {
	return &Table{
		Name:  name,
		elems: make(map[string]string),
	}
}

// Put stores code under key, replacing any earlier fragment for the key.
func (t *Table) Put(key, code string) {
	if _, ok := t.elems[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.elems[key] = code
}

func (t *Table) Has(key string) bool {
	_, ok := t.elems[key]
	return ok
}

// Lines returns one fragment per unique key in first-insertion order,
// skipping empty fragments.
func (t *Table) Lines() []string {
	lines := make([]string, 0, len(t.keys))
	for _, k := range t.keys {
		if code := t.elems[k]; code != "" {
			lines = append(lines, code)
		}
	}
	return lines
}
