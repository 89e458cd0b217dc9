package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vmc-bosons/internal/domain"
	"vmc-bosons/internal/infrastructure"
)

func testConfig() *domain.Config {
	return &domain.Config{
		Dims:       []int{1},
		Particles:  []int{2},
		Estimators: []string{"analytic", "numerical"},
		OmegaHO:    1,
		OmegaZ:     1,
		DiffStep:   0.001,
		StepLength: 1,
		Cycles:     200,
		Alpha:      domain.ParamRange{Min: 0.5, Max: 0.5, N: 1},
		Beta:       domain.ParamRange{Min: 1, Max: 1, N: 1},
		Workers:    2,
		BaseSeed:   42,
	}
}

func TestSweepRunnerRun(t *testing.T) {
	config := testConfig()
	runner := NewSweepRunner(zap.NewNop(), config, infrastructure.NewWorkerBootstrap(zap.NewNop()))

	var sink bytes.Buffer
	rows, err := runner.Run(&sink)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Строки таблицы идут в порядке постановки задач.
	require.Equal(t, domain.EstimatorAnalytic, rows[0].Run.Estimator)
	require.Equal(t, domain.EstimatorNumerical, rows[1].Run.Estimator)
	for _, row := range rows {
		require.InDelta(t, 1.0, row.Best.Energy, 0.05)
		require.InDelta(t, 0.5, row.Best.Alpha, 1e-12)
	}

	// Каждый прогон пишет в sink целый блок со своим заголовком.
	require.Equal(t, 2, strings.Count(sink.String(), "# alpha beta <E> <E^2>\n"))
}

func TestSweepRunnerInvalidRun(t *testing.T) {
	config := testConfig()
	config.Dims = []int{5}
	runner := NewSweepRunner(zap.NewNop(), config, infrastructure.NewWorkerBootstrap(zap.NewNop()))

	var sink bytes.Buffer
	_, err := runner.Run(&sink)
	require.ErrorIs(t, err, domain.ErrInvalidDimensions)
	require.Zero(t, sink.Len(), "no partial output for an invalid run")
}
