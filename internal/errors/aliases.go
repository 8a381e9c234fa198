package errors

import "github.com/cockroachdb/errors"

// Re-exports from cockroachdb/errors so callers only import this package.
var (
	New    = errors.New
	Newf   = errors.Newf
	Errorf = errors.Errorf
	Wrap   = errors.Wrap
	Wrapf  = errors.Wrapf
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)
