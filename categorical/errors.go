package categorical

import "github.com/pkg/errors"

// ErrInvalidInput marks caller-input problems: a required field missing
// from a row, an unrecognized normalization mode, a negative or
// non-numeric weight.
var ErrInvalidInput = errors.New("invalid input")

// ErrDegenerateInput marks inputs with zero distinct categories or zero
// distinct time periods. The caller decides whether to skip the
// variable or chart it as empty.
var ErrDegenerateInput = errors.New("degenerate input")
