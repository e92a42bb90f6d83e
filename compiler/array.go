package compiler

import (
	"strconv"
	"strings"

	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/lexer"
	"github.com/thiremani/blockc/token"
	"github.com/thiremani/blockc/types"
)

// arrayElements bounds array_init so a typo cannot exhaust hub RAM.
var arrayElements = Range{Min: 1, Max: 2048}

type arrayInit struct {
	Name     string `field:"VAR" default:"myArray"`
	Elements int    `field:"NUM" default:"10"`
}

type arrayFill struct {
	Name string `field:"VAR" default:"myArray"`
	List string `field:"NUM"`
}

type arrayRef struct {
	Name string `field:"VAR" default:"myArray"`
}

func arrayName(name string) string {
	return types.SafeName(name)
}

func registerArrays(r *Registry) {
	Statement(r, "array_init", genArrayInit)
	Statement(r, "array_fill", genArrayFill)
	Value(r, "array_get", genArrayGet)
	Statement(r, "array_set", genArraySet)
	Value(r, "array_length", genArrayLength)
	Statement(r, "array_clear", genArrayClear)
}

// arraySize returns the declared element count of an enabled array_init
// anywhere in the workspace, so use sites may appear before the
// declaration in traversal order.
func (g *Generator) arraySize(b *block.Block, name string) (int, string, bool) {
	n, ok := g.Index.Arrays[name]
	if ok {
		return int(arrayElements.Clamp(int64(n))), "", true
	}
	if !g.RequireCompanion("array_init") {
		msg, _ := g.Companion(b, "array initialize", "array_init")
		return 0, msg, false
	}
	// initializers exist, just not for this name
	return 0, g.Fail(b, diag.MissingDependency, "Missing array initialize block for %s!", name), false
}

func genArrayInit(g *Generator, b *block.Block, f *arrayInit) string {
	name := arrayName(f.Name)
	n := g.ClampField(b, "NUM", int64(f.Elements), arrayElements)
	g.Globals.Put("array:"+name, "int "+name+"["+strconv.FormatInt(n, 10)+"];")
	return ""
}

// genArrayFill copies a literal list into the array. Lists longer than the
// array are truncated with a warning so the copy never overruns it.
func genArrayFill(g *Generator, b *block.Block, f *arrayFill) string {
	name := arrayName(f.Name)
	size, msg, ok := g.arraySize(b, name)
	if !ok {
		return msg
	}
	elems, bad := parseList(f.List)
	if bad != "" {
		return g.Warn(b, diag.BadField, "%q is not a number, list ignored", bad)
	}
	if len(elems) == 0 {
		return g.Warn(b, diag.BadField, "empty list for %s", name)
	}
	code := ""
	if len(elems) > size {
		code += g.Warn(b, diag.OutOfRange, "list has %d values but %s holds %d, extra values are truncated", len(elems), name, size) + "\n"
		elems = elems[:size]
	}
	g.AddInclude("string.h")
	tmp := "__tmpArray" + name
	code += "int " + tmp + "[] = {" + strings.Join(elems, ", ") + "};\n"
	code += "memcpy(" + name + ", " + tmp + ", " + strconv.Itoa(len(elems)) + " * sizeof(int));"
	return "{\n" + Indent(code, INDENT) + "\n}"
}

// parseList splits "1, 2, -3" into C literals. It returns the first
// element that is not an integer literal.
func parseList(list string) ([]string, string) {
	elems := []string{}
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, ok := IntLiteral(part)
		if !ok {
			if toks := lexer.Tokens(part); len(toks) == 1 && toks[0].Type == token.CHAR {
				elems = append(elems, toks[0].Literal)
				continue
			}
			return nil, part
		}
		elems = append(elems, strconv.FormatInt(n, 10))
	}
	return elems, ""
}

// index emits the INDEX input bounded to the array.
func (g *Generator) index(b *block.Block, size int) string {
	return g.ValueInRange(b, "INDEX", Range{Min: 0, Max: int64(size - 1)}, "0")
}

func genArrayGet(g *Generator, b *block.Block, f *arrayRef) (string, token.Order) {
	name := arrayName(f.Name)
	size, msg, ok := g.arraySize(b, name)
	if !ok {
		return commentValue("0", msg), token.ATOMIC
	}
	return name + "[" + g.index(b, size) + "]", token.UNARY_POSTFIX
}

func genArraySet(g *Generator, b *block.Block, f *arrayRef) string {
	name := arrayName(f.Name)
	size, msg, ok := g.arraySize(b, name)
	if !ok {
		return msg
	}
	value := g.ValueToCode(b, "VALUE", token.ASSIGNMENT)
	return name + "[" + g.index(b, size) + "] = " + value + ";"
}

func genArrayLength(g *Generator, b *block.Block, f *arrayRef) (string, token.Order) {
	name := arrayName(f.Name)
	size, msg, ok := g.arraySize(b, name)
	if !ok {
		return commentValue("0", msg), token.ATOMIC
	}
	return strconv.Itoa(size), token.ATOMIC
}

func genArrayClear(g *Generator, b *block.Block, f *arrayRef) string {
	name := arrayName(f.Name)
	if _, msg, ok := g.arraySize(b, name); !ok {
		return msg
	}
	g.AddInclude("string.h")
	return "memset(" + name + ", 0, sizeof(" + name + "));"
}
