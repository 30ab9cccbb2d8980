package filter

// Record is one decoded EMu record.
type Record = map[string]any

// Filter decides whether a record is kept
type Filter interface {
	// Match checks if a record satisfies the filter expression
	Match(record Record) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (Filter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
