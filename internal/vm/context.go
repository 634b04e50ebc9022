package vm

import (
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// MaxContextDepth caps how deep lexical contexts may nest.
const MaxContextDepth = 256

// LocalContext is one frame of lexical bindings. Contexts form a
// parent-linked chain: lookups walk toward the root, and a child never
// mutates its parent.
type LocalContext struct {
	parent *LocalContext
	vars   map[ident.Name]types.Value
	depth  int
}

// NewLocalContext returns an empty root context.
func NewLocalContext() *LocalContext {
	return &LocalContext{vars: make(map[ident.Name]types.Value)}
}

// Extend returns a child context with no bindings of its own.
func (c *LocalContext) Extend() (*LocalContext, error) {
	if c.depth >= MaxContextDepth {
		return nil, errs.NewRuntimeError(errs.RuntimeMaxContextDepthReached,
			"context depth limit of %d reached", MaxContextDepth)
	}
	return &LocalContext{
		parent: c,
		vars:   make(map[ident.Name]types.Value),
		depth:  c.depth + 1,
	}, nil
}

// Lookup resolves name against this context and its ancestors.
func (c *LocalContext) Lookup(name ident.Name) (types.Value, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if v, ok := ctx.vars[name]; ok {
			return v, true
		}
	}
	return types.Value{}, false
}

// lookupLocal checks only this frame, ignoring ancestors. Binding forms
// use it to allow outer-scope shadowing while rejecting same-scope reuse.
func (c *LocalContext) lookupLocal(name ident.Name) bool {
	_, ok := c.vars[name]
	return ok
}

func (c *LocalContext) bind(name ident.Name, v types.Value) {
	c.vars[name] = v
}

// Depth reports how many Extend steps separate this context from the root.
func (c *LocalContext) Depth() int {
	return c.depth
}
