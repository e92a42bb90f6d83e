package block

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blinkYAML = `
board: flip
blocks:
  - type: main
    statements:
      DO:
        type: pin_high
        fields: {PIN: "5"}
        next:
          type: pause
          values:
            TIME: {type: math_number, fields: {NUM: "200"}}
          next:
            type: pin_toggle
            disabled: true
            fields: {PIN: "5"}
`

func TestParse(t *testing.T) {
	ws, err := Parse([]byte(blinkYAML))
	require.NoError(t, err)
	assert.Equal(t, "flip", ws.Board)
	require.Len(t, ws.Blocks, 1)

	main := ws.Blocks[0]
	assert.Equal(t, "b1", main.ID)
	high := main.Statement("DO")
	require.NotNil(t, high)
	assert.Equal(t, "pin_high", high.Type)
	assert.Equal(t, "5", high.Fields["PIN"])

	pause := high.Next
	require.NotNil(t, pause)
	assert.Equal(t, "200", pause.Value("TIME").Fields["NUM"])
	assert.False(t, pause.Next.Enabled())
	assert.Equal(t, 5, ws.Count())
}

func TestParseJSON(t *testing.T) {
	ws, err := Parse([]byte(`{"blocks": [{"type": "main", "id": "m"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "m", ws.Blocks[0].ID)
	assert.Equal(t, "main#m", ws.Blocks[0].Label())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("blocks: [null]"))
	assert.ErrorContains(t, err, "top-level block 0 is empty")

	_, err = Parse([]byte("blocks: {"))
	assert.ErrorContains(t, err, "decode workspace")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(blinkYAML), 0644))
	ws, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, ws.Blocks, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read workspace")
}

func TestAssignIDsIsDepthFirst(t *testing.T) {
	a := New("a")
	b := New("b")
	c := New("c")
	root := New("main").WithStatement("DO", Chain(a, b)).WithValue("X", c)
	ws := NewWorkspace("", root)
	// values are visited before statements
	assert.Equal(t, []string{"b1", "b2", "b3", "b4"}, []string{root.ID, c.ID, a.ID, b.ID})
	assert.Equal(t, 4, ws.Count())
}

func TestAssignIDsStopsOnCycle(t *testing.T) {
	a := New("a")
	b := New("b")
	Chain(a, b)
	b.Next = a
	ws := NewWorkspace("", a)
	assert.Equal(t, 2, ws.Count())
}

func TestSlotsAreSorted(t *testing.T) {
	b := New("x").WithValue("B", New("n")).WithValue("A", New("n")).WithStatement("DO1", nil).WithStatement("DO0", nil)
	assert.Equal(t, []string{"A", "B"}, b.ValueSlots())
	assert.Equal(t, []string{"DO0", "DO1"}, b.StatementSlots())
}
