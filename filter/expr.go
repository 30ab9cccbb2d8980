package filter

import (
	"fmt"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements Filter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures an expr compiler
type CompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[Filter](size)
		}
	}
}

// WithFunctions adds custom helper functions
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[Filter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Record fields are unknown until run time
	program, err := expr.Compile(expression,
		expr.Env(c.compileEnv()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// compileEnv declares the helpers plus placeholders for the per-record ones
func (c *exprCompiler) compileEnv() map[string]any {
	env := make(map[string]any, len(c.helperFuncs)+2)
	maps.Copy(env, c.helperFuncs)
	env["field"] = func(string) any { return nil }
	env["hasField"] = func(string) bool { return false }
	return env
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Match evaluates the filter against a record
func (f *exprFilter) Match(record Record) (bool, error) {
	result, err := expr.Run(f.program, createRuntimeEnvironment(record, f.helpers))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			IRN:        recordIRN(record),
			Reason:     "failed to evaluate expression",
			Err:        err,
		}
	}

	// AsBool() at compile time guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation.
// Names avoid expr's operators (contains, startsWith, endsWith) and builtins.
func createHelperFunctions() map[string]any {
	return map[string]any{
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"iprefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"isuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"text": func(v any) string {
			if v == nil {
				return ""
			}
			return fmt.Sprint(v)
		},
	}
}

// createRuntimeEnvironment exposes the record's top-level keys next to the
// helpers. Helpers shadow record keys of the same name.
func createRuntimeEnvironment(record Record, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(record)+len(helpers)+2)
	maps.Copy(env, record)
	maps.Copy(env, helpers)

	env["field"] = func(path string) any {
		v, _ := lookup(record, path)
		return v
	}
	env["hasField"] = func(path string) bool {
		_, ok := lookup(record, path)
		return ok
	}

	return env
}

// lookup walks a dot path such as "data.NamLast" through nested objects
func lookup(record Record, path string) (any, bool) {
	var cur any = record
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// recordIRN finds the record identifier for error messages
func recordIRN(record Record) string {
	for _, path := range []string{"irn", "id", "data.irn"} {
		if v, ok := lookup(record, path); ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	return ""
}
