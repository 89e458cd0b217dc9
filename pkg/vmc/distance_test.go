package vmc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDistanceMatrixRebuild(t *testing.T) {
	r := mat.NewDense(3, 2, []float64{
		0, 0,
		3, 4,
		0, 1,
	})

	m := NewDistanceMatrix(3)
	m.Rebuild(r)

	require.InDelta(t, 5, m.Between(0, 1), 1e-12)
	require.InDelta(t, 5, m.Between(1, 0), 1e-12, "indexing must not depend on argument order")
	require.InDelta(t, 1, m.Between(0, 2), 1e-12)
	require.InDelta(t, math.Sqrt(18), m.Between(1, 2), 1e-12)
}

// После любой последовательности инкрементальных обновлений кэш
// должен совпадать со свежепересчитанной матрицей.
func TestDistanceMatrixIncrementalConsistency(t *testing.T) {
	const (
		particles = 8
		dims      = 3
		moves     = 500
		tol       = 1e-12
	)

	rng := rand.New(rand.NewSource(7))
	r := mat.NewDense(particles, dims, nil)
	for i := 0; i < particles; i++ {
		for d := 0; d < dims; d++ {
			r.Set(i, d, rng.Float64()-0.5)
		}
	}

	m := NewDistanceMatrix(particles)
	m.Rebuild(r)

	for move := 0; move < moves; move++ {
		i := rng.Intn(particles)
		row := r.RawRowView(i)
		for d := 0; d < dims; d++ {
			row[d] += rng.Float64() - 0.5
		}
		m.Update(i, r)
	}

	fresh := NewDistanceMatrix(particles)
	fresh.Rebuild(r)
	for i := 0; i < particles; i++ {
		for j := i + 1; j < particles; j++ {
			require.InDelta(t, fresh.Between(i, j), m.Between(i, j), tol,
				"pair (%d, %d) diverged after incremental updates", i, j)
		}
	}
}
