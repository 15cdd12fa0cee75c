package surface

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// gaussianKernel builds a normalised 1-D Gaussian kernel of radius
// round(truncate*sigma), so a sigma of 3 with the default truncation of 4
// spans 12 cells either side of centre.
func gaussianKernel(sigma, truncate float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	s2 := sigma * sigma
	for i := -radius; i <= radius; i++ {
		kernel[i+radius] = math.Exp(-0.5 * float64(i*i) / s2)
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel
}

// gaussianSmooth applies an isotropic Gaussian blur to m, row pass then
// column pass, with reflected edges so border cells see mirrored data rather
// than an implicit zero pad. The input matrix is not modified.
func gaussianSmooth(m *mat.Dense, sigma, truncate float64) *mat.Dense {
	rows, cols := m.Dims()
	kernel := gaussianKernel(sigma, truncate)
	radius := len(kernel) / 2

	tmp := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var acc float64
			for k := -radius; k <= radius; k++ {
				acc += kernel[k+radius] * m.At(i, reflectIndex(j+k, cols))
			}
			tmp.Set(i, j, acc)
		}
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var acc float64
			for k := -radius; k <= radius; k++ {
				acc += kernel[k+radius] * tmp.At(reflectIndex(i+k, rows), j)
			}
			out.Set(i, j, acc)
		}
	}
	return out
}

// reflectIndex folds an out-of-range index back into [0, n) by mirroring
// about the array edges: -1 -> 0, -2 -> 1, n -> n-1, n+1 -> n-2.
func reflectIndex(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - 1 - i
		}
	}
	return i
}
