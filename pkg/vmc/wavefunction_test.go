package vmc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"vmc-bosons/internal/domain"
)

func symmetricConfig(dims, particles int) *domain.RunConfig {
	return &domain.RunConfig{
		Dims:       dims,
		Particles:  particles,
		Trap:       domain.TrapSymmetric,
		OmegaHO:    1,
		OmegaZ:     1,
		DiffStep:   0.001,
		StepLength: 1,
	}
}

func TestSingleBodyGaussian(t *testing.T) {
	cfg := symmetricConfig(2, 1)
	psi := NewWaveFunction(cfg)
	psi.SetParams(0.5, 1)

	r := mat.NewDense(1, 2, []float64{1, 2})
	require.InDelta(t, math.Exp(-0.5*5), psi.SingleBody(r), 1e-12)
}

func TestSingleBodyEllipticalSkew(t *testing.T) {
	cfg := symmetricConfig(3, 1)
	cfg.Trap = domain.TrapElliptical
	psi := NewWaveFunction(cfg)
	psi.SetParams(0.5, 2)

	// Ось z входит в квадрат нормы с весом beta.
	r := mat.NewDense(1, 3, []float64{1, 1, 1})
	require.InDelta(t, math.Exp(-0.5*(1+1+2)), psi.SingleBody(r), 1e-12)
}

func TestPairFactorInteractionDisabled(t *testing.T) {
	cfg := symmetricConfig(3, 2)
	psi := NewWaveFunction(cfg)
	psi.SetParams(0.5, 1)

	r := mat.NewDense(2, 3, []float64{
		0, 0, 0,
		0, 0, 0,
	})
	dist := NewDistanceMatrix(2)
	dist.Rebuild(r)

	require.Equal(t, 1.0, psi.PairFactor(dist))
	require.InDelta(t, psi.SingleBody(r), psi.Eval(r, dist), 1e-15)
}

func TestPairFactorHardCoreZero(t *testing.T) {
	cfg := symmetricConfig(3, 3)
	cfg.Interaction = true
	cfg.HardSphere = 0.1
	psi := NewWaveFunction(cfg)
	psi.SetParams(0.5, 1)

	// Пара (0, 1) внутри жёсткой сферы, множитель ровно ноль.
	r := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		0.05, 0, 0,
		1, 1, 1,
	})
	dist := NewDistanceMatrix(3)
	dist.Rebuild(r)

	require.Equal(t, 0.0, psi.PairFactor(dist))
	require.Equal(t, 0.0, psi.Eval(r, dist))
}

func TestPairFactorValue(t *testing.T) {
	cfg := symmetricConfig(1, 2)
	cfg.Interaction = true
	cfg.HardSphere = 0.1
	psi := NewWaveFunction(cfg)
	psi.SetParams(0.5, 1)

	// r_01 = 0.2, a = 0.1 -> (1 - a/r) = 0.5
	r := mat.NewDense(2, 1, []float64{0, 0.2})
	dist := NewDistanceMatrix(2)
	dist.Rebuild(r)

	require.InDelta(t, 0.5, psi.PairFactor(dist), 1e-12)
}
