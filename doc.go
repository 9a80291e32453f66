// Package ascertain compiles declarative schema descriptions into reusable
// validators that report precise, path-qualified issues.
//
// A schema is an ordinary Go value tree combining literals, type markers,
// patterns, structural objects and arrays, and the Or/And/Optional/Tuple/
// Discriminated combinators:
//
//	v := ascertain.MustCompile(map[string]any{
//		"name": ascertain.String,
//		"port": ascertain.Number,
//		"mode": ascertain.Or("dev", "prod"),
//	})
//	if !v.Validate(cfg) {
//		log.Fatal(v.Issues)
//	}
//
// Compiled validators run a fast boolean pass first and build diagnostics
// only when that pass fails, so validating already-correct data does not
// allocate messages or paths.
//
// The as subpackage converts string inputs (environment variables and the
// like) into typed values, returning error sentinels instead of failing, so
// a configuration object can be built eagerly and validated lazily with full
// path context.
package ascertain
