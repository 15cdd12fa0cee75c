package surface

import (
	"errors"
	"fmt"
)

// ErrNumericAnomaly reports that interpolation produced a non-finite value
// outside the documented fill behaviour. Surfaces containing NaN or Inf are
// never returned; the anomaly is surfaced instead of propagating into
// downstream comparisons.
var ErrNumericAnomaly = errors.New("interpolation produced a non-finite value")

// ShapeMismatchError reports an attempt to difference two surfaces built on
// incompatible grids. This is a caller contract violation: the comparator
// fails fast rather than attempting a partial computation.
type ShapeMismatchError struct {
	SubjectRows, SubjectCols   int
	BaselineRows, BaselineCols int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("surface shape mismatch: subject %dx%d vs baseline %dx%d",
		e.SubjectRows, e.SubjectCols, e.BaselineRows, e.BaselineCols)
}
