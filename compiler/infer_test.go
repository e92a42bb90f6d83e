package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/blockc/types"
)

var testHelpers = map[string]types.Kind{
	"ad_volts": types.Float,
	"str_join": types.Char,
	"str_from": types.CharPtr,
}

func TestInfer(t *testing.T) {
	tests := []struct {
		rhs     string
		want    types.Kind
		length  int
		matched bool
	}{
		{"ad_volts(2)", types.Float, 0, true},
		{"(float) a", types.Float, 0, true},
		{`str_join("a", "b")`, types.Char, 0, true},
		{"str_from(s, 2)", types.CharPtr, 0, true},
		{`"hello"`, types.Char, 6, true},
		{`"a\n"`, types.Char, 3, true},
		{"3.5 * x", types.Float, 0, true},
		{"true", types.Bool, 0, true},
		{"a && false", types.Bool, 0, true},
		{"42", types.Int, 0, false},
		{"x + 1", types.Int, 0, false},
		{"ad_volts", types.Int, 0, false}, // not a call
		{"0 /* 2.5 */", types.Int, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.rhs, func(t *testing.T) {
			inf := Infer(tt.rhs, testHelpers)
			assert.Equal(t, tt.want, inf.Type)
			assert.Equal(t, tt.length, inf.Length)
			assert.Equal(t, tt.matched, inf.Matched)
		})
	}
}

func TestInferOrder(t *testing.T) {
	// a float helper outranks a string literal in its arguments
	assert.Equal(t, types.Float, Infer(`ad_volts("x")`, testHelpers).Type)
	// a string literal outranks a float literal
	assert.Equal(t, types.Char, Infer(`"2.5" + 1.5`, testHelpers).Type)
}

func TestObserve(t *testing.T) {
	t.Run("last signal wins", func(t *testing.T) {
		vt := NewVarTable(testHelpers)
		vt.Observe("x", "1")
		rec, _ := vt.Observe("x", "2.5")
		assert.Equal(t, types.Float, rec.Type)
		rec, _ = vt.Observe("x", `"abc"`)
		assert.Equal(t, types.Char, rec.Type)
		assert.Equal(t, 4, rec.Length)
	})

	t.Run("defaulted int does not downgrade", func(t *testing.T) {
		vt := NewVarTable(testHelpers)
		vt.Observe("x", "2.5")
		rec, inf := vt.Observe("x", "7")
		assert.False(t, inf.Matched)
		assert.Equal(t, types.Float, rec.Type)
	})

	t.Run("char keeps longest", func(t *testing.T) {
		vt := NewVarTable(testHelpers)
		vt.Observe("s", `"a long text"`)
		rec, _ := vt.Observe("s", `"ab"`)
		assert.Equal(t, 12, rec.Length)
	})

	t.Run("explicit is locked", func(t *testing.T) {
		vt := NewVarTable(testHelpers)
		vt.Declare("n", types.Int, 0)
		rec, _ := vt.Observe("n", "2.5")
		assert.Equal(t, types.Int, rec.Type)
		assert.True(t, rec.Explicit)
	})

	t.Run("use before assignment", func(t *testing.T) {
		vt := NewVarTable(testHelpers)
		rec := vt.Use("k")
		assert.Equal(t, types.Int, rec.Type)
		assert.Same(t, rec, vt.Use("k"))
	})

	t.Run("records keep first-seen order", func(t *testing.T) {
		vt := NewVarTable(testHelpers)
		vt.Observe("b", "1")
		vt.Observe("a", "1")
		vt.Observe("b", "2.5")
		recs := vt.Records()
		require.Len(t, recs, 2)
		assert.Equal(t, "b", recs[0].Name)
		assert.Equal(t, "a", recs[1].Name)
	})
}

func TestExprType(t *testing.T) {
	g := NewGenerator(Options{})
	g.Vars.Observe("msg", `"hi"`)
	assert.Equal(t, types.Char, g.ExprType("msg"))
	assert.Equal(t, types.Int, g.ExprType("msg + 1"))
	assert.Equal(t, types.Int, g.ExprType("unknown"))
	assert.Equal(t, types.Float, g.ExprType("sqrt(2)"))
}
