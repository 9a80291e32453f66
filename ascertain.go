package ascertain

// Ascertain compiles schema and immediately checks data against it. On
// failure it returns the issue list as an error whose message carries the
// first issue's text; callers wanting full detail extract the list with
// AsIssues. Prefer Compile when the same schema is checked repeatedly.
func Ascertain(schema, data any) error {
	v, err := Compile(schema)
	if err != nil {
		return err
	}
	if v.Validate(data) {
		return nil
	}
	return v.Issues
}

// CreateValidator binds a fixed configuration object and returns a function
// that validates a partial schema against it, returning the same object on
// success. Modules can each declare only the configuration keys they consume:
//
//	validate := ascertain.CreateValidator(cfg)
//	cfg, err := validate(map[string]any{"PORT": ascertain.Number})
func CreateValidator[T any](config T) func(schema any) (T, error) {
	return func(schema any) (T, error) {
		if err := Ascertain(schema, config); err != nil {
			var zero T
			return zero, err
		}
		return config, nil
	}
}

// Result is the standard-result calling convention: Value carries the
// validated data on success, Issues is non-empty on failure.
type Result struct {
	Value  any
	Issues Issues
}

// OK reports whether the result represents a successful validation.
func (r Result) OK() bool { return len(r.Issues) == 0 }

// Check validates data and wraps the outcome in a Result for consumers that
// expect a result object instead of the boolean-plus-Issues convention.
func (v *Validator) Check(data any) Result {
	if v.Validate(data) {
		return Result{Value: data}
	}
	return Result{Issues: v.Issues}
}
