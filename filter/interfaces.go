package filter

// Env is the variable and function set one expression runs against.
// Build it with GameEnv, TeamEnv or AthleteEnv.
type Env map[string]any

// CompiledFilter is a pre-compiled expression ready for evaluation
type CompiledFilter interface {
	// Evaluate runs the expression against env
	Evaluate(env Env) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
