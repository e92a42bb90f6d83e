package compiler

import (
	"strconv"
	"strings"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/token"
	"github.com/thiremani/blockc/types"
)

// EEPROM addresses the user may touch. The area below eepromBase holds the
// program image.
var eepromRange = Range{Min: 0, Max: 7675}

const (
	eepromBase   = 32768
	eepromBuffer = "__eeBffr"
	eepromStrLen = 128
)

type consolePrint struct {
	Newline bool `field:"NEWLINE" default:"TRUE"`
}

type eepromWrite struct {
	Type string `field:"TYPE" default:"NUMBER"`
}

type eepromRead struct {
	Type string `field:"TYPE" default:"NUMBER"`
	Var  string `field:"VAR"`
}

func registerHardware(r *Registry) {
	Statement(r, "console_print", genConsolePrint)
	Statement(r, "eeprom_write", genEepromWrite)
	Statement(r, "eeprom_read", genEepromRead)
	r.Helper("ee_getInt", types.Int)
	r.Helper("ee_getByte", types.Int)
}

// genConsolePrint picks the format verb from the type of the message.
func genConsolePrint(g *Generator, b *block.Block, f *consolePrint) string {
	msg := g.ValueOr(b, "MESSAGE", token.NONE, `""`)
	verb := "%d"
	switch g.ExprType(msg) {
	case types.Float:
		verb = "%f"
	case types.Char, types.CharPtr:
		verb = "%s"
	}
	if f.Newline {
		verb += `\n`
	}
	return `print("` + verb + `", ` + msg + `);`
}

func eepromAddr(g *Generator, b *block.Block) string {
	return strconv.Itoa(eepromBase) + " + " + g.ValueInRange(b, "ADDRESS", eepromRange, "0")
}

func genEepromWrite(g *Generator, b *block.Block, f *eepromWrite) string {
	if c, ok := g.Feature(b, "eeprom"); !ok {
		return c
	}
	addr := eepromAddr(g, b)
	switch strings.ToUpper(f.Type) {
	case "TEXT":
		data := g.ValueOr(b, "DATA", token.NONE, types.Char.Zero())
		g.AddInclude("string.h")
		return "ee_putStr(" + data + ", (strlen(" + data + ") + 1) % " + strconv.Itoa(eepromStrLen) + ", " + addr + ");"
	case "BYTE":
		data := g.ValueOr(b, "DATA", token.NONE, types.Int.Zero())
		return "ee_putByte(" + data + ", " + addr + ");"
	default:
		data := g.ValueOr(b, "DATA", token.NONE, types.Int.Zero())
		return "ee_putInt(" + data + ", " + addr + ");"
	}
}

// genEepromRead reads into a user variable. Text goes through one shared
// buffer so that every read block reuses the same global.
func genEepromRead(g *Generator, b *block.Block, f *eepromRead) string {
	if c, ok := g.Feature(b, "eeprom"); !ok {
		return c
	}
	if f.Var == "" {
		return g.Warn(b, diag.BadField, "EEPROM read block has no variable selected")
	}
	name := varName(f.Var)
	addr := eepromAddr(g, b)
	switch strings.ToUpper(f.Type) {
	case "TEXT":
		g.Globals.Put("eeBffr", "char "+eepromBuffer+"["+strconv.Itoa(eepromStrLen)+"];")
		g.AddInclude("string.h")
		rec, _ := g.Vars.Observe(name, `""`)
		if !rec.Explicit {
			rec.Length = max(rec.Length, eepromStrLen)
		}
		g.declareVar(rec)
		return "ee_getStr(" + eepromBuffer + ", " + strconv.Itoa(eepromStrLen) + ", " + addr + ");\n" +
			"strcpy(" + name + ", " + eepromBuffer + ");"
	case "BYTE":
		call := "ee_getByte(" + addr + ")"
		rec, _ := g.Vars.Observe(name, call)
		g.declareVar(rec)
		return name + " = " + call + ";"
	default:
		call := "ee_getInt(" + addr + ")"
		rec, _ := g.Vars.Observe(name, call)
		g.declareVar(rec)
		return name + " = " + call + ";"
	}
}
