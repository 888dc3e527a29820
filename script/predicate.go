// Package script compiles tengo expressions into collision query predicates.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/collide/collision"
	"github.com/milk9111/collide/logging"
)

var ErrEmptyFilter = errors.New("script: empty filter expression")

// The expression sees the candidate through these globals.
const (
	varID     = "id"
	varKind   = "kind"
	varFlags  = "flags"
	varX      = "x"
	varY      = "y"
	varRadius = "radius"
	varTag    = "tag"
	varResult = "__result"
)

// Filter is a compiled filter expression such as
// `flags & 2 != 0 && kind == "circle"`. It is not safe for concurrent use.
type Filter struct {
	src      string
	compiled *tengo.Compiled
	log      *zap.Logger
	failed   bool
}

// Compile builds a Filter from a single tengo expression. The tengo stdlib
// modules are importable, e.g. `import("math").abs(x) < 10`.
func Compile(expr string, log *zap.Logger) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmptyFilter
	}
	if log == nil {
		log = logging.Default()
	}

	s := tengo.NewScript([]byte(fmt.Sprintf("%s := (%s)", varResult, expr)))
	_ = s.Add(varID, 0)
	_ = s.Add(varKind, "")
	_ = s.Add(varFlags, 0)
	_ = s.Add(varX, 0.0)
	_ = s.Add(varY, 0.0)
	_ = s.Add(varRadius, 0.0)
	_ = s.Add(varTag, "")
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %q: %w", expr, err)
	}
	return &Filter{src: expr, compiled: compiled, log: log}, nil
}

func (f *Filter) Source() string {
	return f.src
}

// Eval runs the expression against s.
func (f *Filter) Eval(s collision.Shape) (bool, error) {
	c := s.Center()
	vars := []struct {
		name  string
		value any
	}{
		{varID, int64(s.ID())},
		{varKind, string(s.TypeID())},
		{varFlags, int64(s.CollisionFlags())},
		{varX, c.X},
		{varY, c.Y},
		{varRadius, s.Radius()},
		{varTag, tagOf(s)},
	}
	for _, v := range vars {
		if err := f.compiled.Set(v.name, v.value); err != nil {
			return false, fmt.Errorf("script: set %s: %w", v.name, err)
		}
	}
	if err := f.compiled.Run(); err != nil {
		return false, fmt.Errorf("script: run %q: %w", f.src, err)
	}
	return f.compiled.Get(varResult).Bool(), nil
}

// Predicate adapts f for QueryOptions. A runtime error rejects the candidate
// and is logged once per Filter.
func (f *Filter) Predicate() collision.Predicate {
	return func(s collision.Shape) bool {
		ok, err := f.Eval(s)
		if err != nil {
			if !f.failed {
				f.failed = true
				f.log.Error("script: filter failed", zap.String("expr", f.src), zap.Error(err))
			}
			return false
		}
		return ok
	}
}

// Tagger is implemented by user data that wants to expose a tag to filters.
type Tagger interface {
	Tag() string
}

func tagOf(s collision.Shape) string {
	switch v := s.UserData().(type) {
	case string:
		return v
	case Tagger:
		return v.Tag()
	}
	return ""
}
