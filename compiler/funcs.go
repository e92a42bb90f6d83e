package compiler

import (
	"github.com/thiremani/blockc/block"
	"github.com/thiremani/blockc/diag"
	"github.com/thiremani/blockc/types"
)

type mainBlock struct{}

type procDef struct {
	Name string `field:"NAME" default:"myFunction"`
}

type procCall struct {
	Name string `field:"NAME"`
}

func funcName(name string) string {
	return types.SafeName(name)
}

func registerFuncs(r *Registry) {
	Root(r, "main", genMain)
	Root(r, "procedures_defnoreturn", genProcDef)
	Statement(r, "procedures_callnoreturn", genProcCall)
}

// genMain stores the body of the program entry point. Only the first
// enabled main block counts.
func genMain(g *Generator, b *block.Block, _ *mainBlock) {
	if g.mainFound {
		g.Report(b, diag.Unsupported, diag.Warning, "only one main block is allowed, %s is ignored", b.Label())
		return
	}
	g.mainFound = true
	g.mainBody = g.StatementToCode(b, "DO")
}

func genProcDef(g *Generator, b *block.Block, f *procDef) {
	name := funcName(f.Name)
	if g.Methods.Has("func:" + name) {
		g.Report(b, diag.Unsupported, diag.Warning, "function %s is defined more than once, the last definition is used", name)
	}
	g.enterFunc(name)
	body := g.StatementToCode(b, "STACK")
	g.leave()

	code := "void " + name + "() {\n"
	if body != "" {
		code += body + "\n"
	}
	code += "}"
	g.AddMethod("func:"+name, "void "+name+"();", code)
}

func genProcCall(g *Generator, b *block.Block, f *procCall) string {
	name := funcName(f.Name)
	if f.Name == "" {
		return g.Fail(b, diag.BadField, "function call has no function selected")
	}
	if g.Index.Functions[name] == 0 {
		return g.Fail(b, diag.MissingDependency, "Missing function definition for %s!", name)
	}
	return name + "();"
}
