package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"activity-board", "flip", "heb", "s3"}, Names())

	p, ok := Builtin(Default)
	require.True(t, ok)
	assert.True(t, p.HasPin(5))
	assert.False(t, p.HasPin(20))
	assert.True(t, p.HasADC(3))
	assert.True(t, p.Supports("sd"))
	assert.False(t, p.Supports("rgb"))
	assert.Equal(t, []string{"simpletools.h"}, p.Includes)

	s3, ok := Builtin("s3")
	require.True(t, ok)
	assert.Equal(t, []string{"s3_setup();", "pause(1000);"}, s3.Setup)
}

func TestLookup(t *testing.T) {
	p, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, Default, p.Name)

	custom := &Profile{Name: "flip", Pins: []int{0}}
	p, err = Lookup("flip", custom)
	require.NoError(t, err)
	assert.Same(t, custom, p)

	_, err = Lookup("arduino")
	assert.EqualError(t, err, `unknown board "arduino"`)
}

func TestParse(t *testing.T) {
	ps, err := Parse([]byte(`
- name: bench
  pins: [1, 2]
  features: [serial]
`))
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, []int{1, 2}, ps[0].Pins)

	_, err = Parse([]byte(`- pins: [1]`))
	assert.ErrorContains(t, err, "has no name")

	_, err = Parse([]byte(`name: [`))
	assert.ErrorContains(t, err, "decode board profiles")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- name: bench\n  pins: [3]\n"), 0644))
	ps, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bench", ps[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorContains(t, err, "read board profiles")
}
