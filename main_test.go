package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiremani/blockc/board"
	"github.com/thiremani/blockc/compiler"
)

const blinkWorkspace = `board: activity-board
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
`

const missingSoundWorkspace = `blocks:
  - type: main
    statements:
      DO:
        type: sound_play
`

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "blockc-cache")
	if err != nil {
		panic(err)
	}
	cfg.CacheDir = dir
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// runCmd executes the root command with args and returns stdout and stderr.
// Flag variables are reset first since cobra keeps them between runs.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	boardName, outPath, noCache, strict, boardFiles = "", "", false, false, nil
	strLen = compiler.DefaultStrLen

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeWorkspace(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestBuildWritesSource(t *testing.T) {
	ws := writeWorkspace(t, "blink.yaml", blinkWorkspace)
	_, errOut, err := runCmd(t, "build", ws)
	require.NoError(t, err)

	dest := strings.TrimSuffix(ws, ".yaml") + C_SUFFIX
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "  high(5);\n  pause(200);\n")
	assert.Contains(t, errOut, "✅ Generated "+dest+" for activity-board")
}

func TestBuildToStdoutUsesCache(t *testing.T) {
	// a name of its own keeps other tests from filling this entry
	ws := writeWorkspace(t, "blink.yaml", "name: cached\n"+blinkWorkspace)

	first, errOut, err := runCmd(t, "build", "-o", "-", ws)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "// ------ Libraries and Definitions ------\n"))
	assert.NotContains(t, errOut, "Using cached output")

	second, errOut, err := runCmd(t, "build", "-o", "-", ws)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, errOut, "Using cached output")

	// a different buffer length is a different entry
	_, errOut, err = runCmd(t, "build", "--strlen", "32", "-o", "-", ws)
	require.NoError(t, err)
	assert.NotContains(t, errOut, "Using cached output")
}

func TestBuildReportsDiagnostics(t *testing.T) {
	ws := writeWorkspace(t, "sound.yaml", missingSoundWorkspace)
	out, errOut, err := runCmd(t, "build", "--no-cache", "-o", "-", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "// ERROR: Missing Sound initialize block!")
	assert.Contains(t, errOut, "⚠️ "+ws+": ERROR [missing-dependency] sound_play#b2: Missing Sound initialize block!")
}

func TestBuildStrict(t *testing.T) {
	ws := writeWorkspace(t, "sound.yaml", missingSoundWorkspace)
	_, _, err := runCmd(t, "build", "--no-cache", "--strict", "-o", "-", ws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation reported 1 errors")
}

func TestBuildBoardFlag(t *testing.T) {
	ws := writeWorkspace(t, "blink.yaml", blinkWorkspace)
	out, _, err := runCmd(t, "build", "--no-cache", "-b", "heb", "-o", "-", ws)
	require.NoError(t, err)
	assert.Contains(t, out, `#include "badgetools.h"`)
	assert.Contains(t, out, "badge_setup();")

	_, _, err = runCmd(t, "build", "--no-cache", "-b", "nope", "-o", "-", ws)
	assert.EqualError(t, err, `unknown board "nope"`)
}

func TestBuildExtraBoards(t *testing.T) {
	profiles := writeWorkspace(t, "boards.yaml", "- {name: tiny, pins: [5], includes: [tiny.h]}\n")
	ws := writeWorkspace(t, "blink.yaml", blinkWorkspace)
	out, _, err := runCmd(t, "build", "--no-cache", "--boards", profiles, "-b", "tiny", "-o", "-", ws)
	require.NoError(t, err)
	assert.Contains(t, out, `#include "tiny.h"`)
	assert.Contains(t, out, "high(5);")
}

func TestBuildErrors(t *testing.T) {
	_, _, err := runCmd(t, "build", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read workspace")

	bad := writeWorkspace(t, "bad.yaml", "blocks: {")
	_, _, err = runCmd(t, "build", bad)
	assert.ErrorContains(t, err, "decode workspace")

	_, _, err = runCmd(t, "build")
	assert.Error(t, err)
}

func TestPrintKinds(t *testing.T) {
	var out bytes.Buffer
	printKinds(&out, compiler.Builtins())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, len(compiler.Builtins().Kinds()))

	var mainLine, pinLine string
	for _, l := range lines {
		switch strings.Fields(l)[0] {
		case "main":
			mainLine = l
		case "pin_input":
			pinLine = l
		}
	}
	assert.Equal(t, []string{"main", "root", "builtin"}, strings.Fields(mainLine))
	assert.Equal(t, []string{"pin_input", "value", "template", "PIN:pin"}, strings.Fields(pinLine))
}

func TestPrintBoards(t *testing.T) {
	var out bytes.Buffer
	extra := []*board.Profile{{Name: "heb", Title: "My badge", Features: []string{"rgb"}}}
	printBoards(&out, extra)
	text := out.String()
	assert.Contains(t, text, "My badge (rgb)")
	assert.NotContains(t, text, "Hackable Electronic Badge")
	assert.Contains(t, text, "Propeller Activity Board WX (sd, sound, eeprom, servo, serial)")
	assert.Len(t, strings.Split(strings.TrimSpace(text), "\n"), len(board.Names()))
}

func TestVersion(t *testing.T) {
	out, _, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "blockc dev ("))
}
