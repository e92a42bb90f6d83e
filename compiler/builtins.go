package compiler

import (
	"fmt"
	"sync"

	"github.com/thiremani/blockc/types"
)

var builtins = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	registerFuncs(r)
	registerVariables(r)
	registerOperators(r)
	registerCond(r)
	registerLoops(r)
	registerArrays(r)
	registerHardware(r)
	if err := r.LoadTemplates(builtinTemplates); err != nil {
		panic(fmt.Sprintf("compiler: embedded templates: %v", err))
	}
	// runtime helpers every board library provides
	r.Helper("constrainInt", types.Int)
	r.Helper("constrainFloat", types.Float)
	return r
})

// Builtins returns the registry with every block kind this package
// knows. It is built once and must be treated as read-only; use
// NewRegistry and the register functions for a custom set.
func Builtins() *Registry {
	return builtins()
}
