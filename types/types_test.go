package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"count", "count"},
		{"my var", "my_var"},
		{"left-motor.speed", "left_motor_speed"},
		{"2fast", "_2fast"},
		{"int", "int_"},
		{"pause", "pause_"},
		{"größe", "gru00F6u00DFe"},
		{"  ", "_unnamed"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}

func TestDecl(t *testing.T) {
	assert.Equal(t, "int x;", Int.Decl("x", ""))
	assert.Equal(t, "float x;", Float.Decl("x", ""))
	assert.Equal(t, "char x[12];", Char.Decl("x", "12"))
	assert.Equal(t, "char *x;", CharPtr.Decl("x", ""))
	assert.Equal(t, "bool x;", Bool.Decl("x", ""))
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "char pointer", CharPtr.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
	assert.Equal(t, `""`, Char.Zero())
	assert.Equal(t, "0.0", Float.Zero())
}

func TestReserved(t *testing.T) {
	assert.True(t, IsReserved("while"))
	assert.True(t, IsReserved("constrainInt"))
	assert.False(t, IsReserved("counter"))

	names := ReservedNames()
	names[0] = "changed"
	assert.True(t, IsReserved("auto"))
}
