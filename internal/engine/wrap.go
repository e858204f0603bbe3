package engine

import (
	"errors"

	"github.com/okabe-dev/peruse/internal/apperr"
)

var (
	errIndexOutOfRange = errors.New("selection index out of range")
	errEmptySelection  = errors.New("selection is empty")
)

// WrapIndex maps a raw highlight index onto [0, n) with Euclidean
// modulo, so moving up from index 0 wraps to n-1 and moving past n-1
// wraps to 0. Callers must check for an empty selection first; n == 0
// is a precondition violation reported as a Parse error rather than a
// silent modulo-by-zero.
func WrapIndex(raw, n int) (int, error) {
	if n <= 0 {
		return 0, apperr.Parse("wrap index", errEmptySelection)
	}
	r := raw % n
	if r < 0 {
		r += n
	}
	return r, nil
}
