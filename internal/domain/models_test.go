package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetTrapType(t *testing.T) {
	require.Equal(t, TrapElliptical, (&Config{Trap: "elliptical"}).GetTrapType())
	require.Equal(t, TrapSymmetric, (&Config{Trap: "symmetric"}).GetTrapType())
	require.Equal(t, TrapSymmetric, (&Config{}).GetTrapType())
}

func TestGetEstimatorMode(t *testing.T) {
	require.Equal(t, EstimatorAnalytic, GetEstimatorMode("analytic"))
	require.Equal(t, EstimatorNumerical, GetEstimatorMode("numerical"))
	require.Equal(t, EstimatorNumerical, GetEstimatorMode(""))
}

func TestRunConfigsExpandsGrid(t *testing.T) {
	config := &Config{
		Dims:       []int{1, 3},
		Particles:  []int{2, 10},
		Estimators: []string{"analytic", "numerical"},
		Trap:       "symmetric",
		OmegaHO:    1,
		DiffStep:   0.001,
		StepLength: 1,
	}

	runs := config.RunConfigs()
	require.Len(t, runs, 8)

	// Внешний цикл по размерностям, внутренний по режиму оценки.
	require.Equal(t, 1, runs[0].Dims)
	require.Equal(t, 2, runs[0].Particles)
	require.Equal(t, EstimatorAnalytic, runs[0].Estimator)
	require.Equal(t, EstimatorNumerical, runs[1].Estimator)
	require.Equal(t, 3, runs[4].Dims)
}

func TestRunConfigValidate(t *testing.T) {
	valid := RunConfig{
		Dims:       3,
		Particles:  10,
		OmegaHO:    1,
		DiffStep:   0.001,
		StepLength: 1,
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*RunConfig)
		want   error
	}{
		{"zero dims", func(c *RunConfig) { c.Dims = 0 }, ErrInvalidDimensions},
		{"four dims", func(c *RunConfig) { c.Dims = 4 }, ErrInvalidDimensions},
		{"no particles", func(c *RunConfig) { c.Particles = 0 }, ErrInvalidParticles},
		{"elliptical 2d", func(c *RunConfig) { c.Trap = TrapElliptical; c.Dims = 2 }, ErrEllipticalTrapDims},
		{"zero h", func(c *RunConfig) { c.DiffStep = 0 }, ErrInvalidStep},
		{"zero step length", func(c *RunConfig) { c.StepLength = 0 }, ErrInvalidStep},
		{"interaction without radius", func(c *RunConfig) { c.Interaction = true; c.HardSphere = 0 }, ErrInvalidHardSphere},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			require.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}
