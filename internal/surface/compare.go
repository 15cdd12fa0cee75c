package surface

import "gonum.org/v1/gonum/mat"

// Difference subtracts baseline from subject cell by cell. Both surfaces must
// be built on the same grid; a mismatch is a caller bug and fails immediately
// with a ShapeMismatchError before any computation.
//
// The result lives in difference space: positive cells mean the subject
// outperforms the baseline there, negative cells the opposite. No clamping,
// smoothing or renormalisation is applied, so zero stays the neutral midpoint
// for downstream diverging colour scales.
func Difference(subject, baseline *Surface) (*Surface, error) {
	sr, sc := subject.Dims()
	br, bc := baseline.Dims()
	if sr != br || sc != bc || !subject.Grid().SameShape(baseline.Grid()) {
		return nil, &ShapeMismatchError{
			SubjectRows: sr, SubjectCols: sc,
			BaselineRows: br, BaselineCols: bc,
		}
	}

	diff := mat.NewDense(sr, sc, nil)
	diff.Sub(subject.data, baseline.data)
	return newSurface(subject.grid, diff), nil
}
