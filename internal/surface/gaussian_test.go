package surface

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestGaussianKernelNormalised(t *testing.T) {
	kernel := gaussianKernel(3, 4)
	if len(kernel) != 25 {
		t.Fatalf("sigma 3 truncated at 4 sigmas should span 25 cells, got %d", len(kernel))
	}

	sum := 0.0
	for _, v := range kernel {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("kernel sums to %v, expected 1", sum)
	}

	for i := 0; i < len(kernel)/2; i++ {
		if kernel[i] != kernel[len(kernel)-1-i] {
			t.Errorf("kernel not symmetric at offset %d", i)
		}
	}
	mid := len(kernel) / 2
	if kernel[mid] <= kernel[mid-1] {
		t.Error("kernel should peak at the centre")
	}
}

func TestGaussianSmoothPreservesConstant(t *testing.T) {
	m := mat.NewDense(20, 30, nil)
	for i := 0; i < 20; i++ {
		for j := 0; j < 30; j++ {
			m.Set(i, j, 0.05)
		}
	}

	out := gaussianSmooth(m, 3, 4)
	for i := 0; i < 20; i++ {
		for j := 0; j < 30; j++ {
			if math.Abs(out.At(i, j)-0.05) > 1e-12 {
				t.Fatalf("cell (%d,%d) = %v, reflect smoothing must preserve a constant field", i, j, out.At(i, j))
			}
		}
	}
}

func TestGaussianSmoothSpreadsImpulse(t *testing.T) {
	n := 51
	m := mat.NewDense(n, n, nil)
	m.Set(25, 25, 1)

	out := gaussianSmooth(m, 3, 4)

	if out.At(25, 25) >= 1 {
		t.Error("impulse centre should shrink under smoothing")
	}
	if out.At(25, 28) <= 0 {
		t.Error("smoothing should spread mass to nearby cells")
	}
	if out.At(25, 28) != out.At(25, 22) || out.At(22, 25) != out.At(28, 25) {
		t.Error("isotropic blur of a centred impulse must be symmetric")
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum += out.At(i, j)
		}
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("total mass %v, expected 1 for an interior impulse", sum)
	}
}

func TestGaussianSmoothDoesNotMutateInput(t *testing.T) {
	m := mat.NewDense(10, 10, nil)
	m.Set(5, 5, 1)
	gaussianSmooth(m, 3, 4)
	if m.At(5, 5) != 1 {
		t.Error("smoothing must not modify its input")
	}
}

func TestReflectIndex(t *testing.T) {
	cases := []struct{ in, n, want int }{
		{0, 5, 0},
		{4, 5, 4},
		{-1, 5, 0},
		{-2, 5, 1},
		{5, 5, 4},
		{6, 5, 3},
		{-6, 5, 4},
	}
	for _, c := range cases {
		if got := reflectIndex(c.in, c.n); got != c.want {
			t.Errorf("reflectIndex(%d, %d) = %d, want %d", c.in, c.n, got, c.want)
		}
	}
}
