package compiler

import (
	"strconv"
	"strings"

	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/types"
)

const (
	headerIncludes = "// ------ Libraries and Definitions ------"
	headerGlobals  = "// ------ Global Variables and Objects ------"
	headerDecls    = "// ------ Function Declarations ------"
	headerMethods  = "// ------ Functions ------"
	headerMain     = "// ------ Main Program ------"
)

// declareVar (re)writes the global declaration of a variable. The key is
// the variable, so the declaration always reflects the latest record.
func (g *Generator) declareVar(rec *VarRecord) {
	length := ""
	if rec.Type == types.Char {
		length = LenPlaceholder(rec.Name)
	}
	if rec.Type == types.Bool {
		g.AddInclude("stdbool.h")
	}
	g.Globals.Put("var:"+rec.Name, rec.Type.Decl(rec.Name, length))
}

// Assemble concatenates the tables and the main body into one translation
// unit and then resolves the length placeholders. It completes the pass:
// the generator cannot be used afterwards.
func (g *Generator) Assemble(body string) string {
	var out strings.Builder
	section := func(header string, lines []string) {
		if len(lines) == 0 {
			return
		}
		out.WriteString(header + "\n")
		out.WriteString(strings.Join(lines, "\n"))
		out.WriteString("\n\n")
	}

	section(headerIncludes, g.Includes.Lines())
	section(headerGlobals, g.Globals.Lines())
	section(headerDecls, g.MethodDecls.Lines())
	section(headerMethods, g.Methods.Lines())

	out.WriteString(headerMain + "\n")
	out.WriteString("int main() {\n")
	if setups := g.Setups.Lines(); len(setups) > 0 {
		out.WriteString(Indent(strings.Join(setups, "\n"), INDENT) + "\n")
		if body != "" {
			out.WriteString("\n")
		}
	}
	if body != "" {
		out.WriteString(body + "\n")
	}
	out.WriteString("}\n")

	g.finished = true
	return g.resolveLengths(out.String())
}

// resolveLengths is the second pass: char buffer lengths may only become
// known after the declaration has been written.
func (g *Generator) resolveLengths(src string) string {
	if !HasPlaceholder(src) {
		return src
	}
	src, unresolved := ExpandLengths(src, func(name string) (string, bool) {
		rec, ok := g.Vars.Get(name)
		if !ok {
			return "", false
		}
		if rec.Type != types.Char || rec.Length <= 0 {
			return strconv.Itoa(g.strLen), true
		}
		return strconv.Itoa(rec.Length), true
	})
	if len(unresolved) == 0 {
		return src
	}
	for _, name := range unresolved {
		g.Diagnostics = append(g.Diagnostics, &diag.Diagnostic{
			Kind:     diag.UnresolvedLength,
			Severity: diag.Error,
			Msg:      "no length known for " + name + ", using " + strconv.Itoa(g.strLen),
		})
	}
	src, _ = ExpandLengths(src, func(string) (string, bool) {
		return strconv.Itoa(g.strLen), true
	})
	return src
}
