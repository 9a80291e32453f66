package ascertain

import (
	"github.com/3axap4eHko/ascertain/internal/engine"
	"github.com/3axap4eHko/ascertain/internal/ir"
)

// CompileOption configures a Compile call.
type CompileOption func(*compileOptions)

type compileOptions struct {
	allErrors bool
}

// WithAllErrors selects all-errors diagnostic aggregation: a failing
// validation reports every issue in traversal order instead of only the
// first one.
func WithAllErrors() CompileOption {
	return func(o *compileOptions) { o.allErrors = true }
}

// Validator is a compiled, reusable validation procedure. It is created once
// by Compile and invoked many times; each Validate call overwrites Issues
// with that call's outcome, so concurrent callers must not share one
// Validator instance without reading Issues synchronously after their own
// call (use one Validator per goroutine, compilation is cheap).
type Validator struct {
	prog      *ir.Program
	allErrors bool

	// Issues holds the outcome of the most recent Validate call: empty on
	// success, one or more issues on failure.
	Issues Issues
}

// Compile translates a schema into a Validator. The boolean fast pass and
// the diagnostic pass share one compiled program; Validate only runs the
// diagnostic pass after the fast pass fails, so the common valid-data path
// pays no diagnostic cost.
func Compile(schema any, opts ...CompileOption) (*Validator, error) {
	var o compileOptions
	for _, opt := range opts {
		opt(&o)
	}
	prog, err := compileSchema(schema)
	if err != nil {
		return nil, err
	}
	return &Validator{prog: prog, allErrors: o.allErrors}, nil
}

// MustCompile is like Compile but panics on a schema error, in the manner of
// regexp.MustCompile. It simplifies package-level validator variables.
func MustCompile(schema any, opts ...CompileOption) *Validator {
	v, err := Compile(schema, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks data against the compiled schema. It returns true and
// leaves Issues empty when the data conforms; otherwise it returns false and
// fills Issues with one issue (default) or all issues (WithAllErrors).
func (v *Validator) Validate(data any) bool {
	if engine.Check(v.prog, data) {
		v.Issues = Issues{}
		return true
	}
	faults := engine.Diagnose(v.prog, data, v.allErrors)
	var iss Issues
	for _, f := range faults {
		iss = AppendIssues(iss, issueFromFault(f))
	}
	v.Issues = iss
	return false
}
