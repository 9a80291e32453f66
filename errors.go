package ascertain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3axap4eHko/ascertain/i18n"
	"github.com/3axap4eHko/ascertain/internal/ir"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = ir.CodeInvalidType
	CodeInvalidLiteral       = ir.CodeInvalidLiteral
	CodeInvalidNullable      = ir.CodeInvalidNullable
	CodePattern              = ir.CodePattern
	CodeUnknownKey           = ir.CodeUnknownKey
	CodeInvalidLength        = ir.CodeInvalidLength
	CodeTooLong              = ir.CodeTooLong
	CodeDiscriminatorUnknown = ir.CodeDiscriminatorUnknown
	CodeCastError            = ir.CodeCastError
)

// Issue represents a single validation entry.
type Issue struct {
	Path    []any  // property keys and array indices, root first
	Code    string // one of the codes listed above
	Message string
	Cause   error // optional: underlying error (cast sentinel)
	// Params carries structured parameters (e.g., {"expected":"Number"})
	// for i18n and observability.
	Params map[string]string
}

// Pointer renders the issue path as a JSON Pointer (for example: /items/2/price).
func (it Issue) Pointer() string {
	if len(it.Path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, seg := range it.Path {
		b.WriteByte('/')
		s := fmt.Sprint(seg)
		s = strings.ReplaceAll(s, "~", "~0")
		s = strings.ReplaceAll(s, "/", "~1")
		b.WriteString(s)
	}
	return b.String()
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error returns the first issue's message, so a returned Issues reads like a
// single validation error. Use Summary for a multi-issue rendering.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	return iss[0].Message
}

// Summary renders the first few issues with their pointers.
func (iss Issues) Summary() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Message, it.Pointer())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// issueFromFault renders an engine fault into a public Issue. Cast failures
// surface the sentinel's own text instead of a dictionary message so the
// original diagnostic survives.
func issueFromFault(f ir.Fault) Issue {
	msg := ""
	if f.Code == CodeCastError {
		msg = f.Params["message"]
	}
	if msg == "" {
		msg = i18n.T(f.Code, f.Params)
	}
	return Issue{
		Path:    f.Path,
		Code:    f.Code,
		Message: msg,
		Cause:   f.Cause,
		Params:  f.Params,
	}
}
