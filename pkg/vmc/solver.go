package vmc

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"vmc-bosons/internal/domain"
)

// VMCSolver выполняет метрополисовскую выборку при фиксированных
// вариационных параметрах и перебор параметров по сетке. Экземпляр
// монопольно владеет своими буферами координат, кэшем расстояний и
// генератором случайных чисел; генератор сеется один раз при
// создании и не пересевается по ходу прогона.
type VMCSolver struct {
	logger *zap.Logger
	cfg    *domain.RunConfig
	rng    *rand.Rand

	psi    *WaveFunction
	energy EnergyEstimator

	rOld *mat.Dense
	rNew *mat.Dense
	dist *DistanceMatrix

	alpha float64
	beta  float64
}

func NewVMCSolver(logger *zap.Logger, cfg *domain.RunConfig, rng *rand.Rand) (*VMCSolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("vmc solver: %w", err)
	}

	psi := NewWaveFunction(cfg)
	energy, err := NewEnergyEstimator(cfg, psi)
	if err != nil {
		return nil, fmt.Errorf("vmc solver: %w", err)
	}

	return &VMCSolver{
		logger: logger,
		cfg:    cfg,
		rng:    rng,
		psi:    psi,
		energy: energy,
		rOld:   mat.NewDense(cfg.Particles, cfg.Dims, nil),
		rNew:   mat.NewDense(cfg.Particles, cfg.Dims, nil),
		dist:   NewDistanceMatrix(cfg.Particles),
	}, nil
}

// SetParams фиксирует alpha и beta на время следующего прогона.
func (s *VMCSolver) SetParams(alpha, beta float64) {
	s.alpha = alpha
	s.beta = beta
	s.psi.SetParams(alpha, beta)
}

// centered возвращает равномерное значение из (-0.5, 0.5).
func (s *VMCSolver) centered() float64 {
	return s.rng.Float64() - 0.5
}

// RunMC выполняет один MC прогон фиксированной длины и возвращает
// накопленную статистику энергии вместе с параметрами прогона.
func (s *VMCSolver) RunMC(nCycles int) domain.Results {
	cfg := s.cfg

	// Случайная стартовая конфигурация.
	for i := 0; i < cfg.Particles; i++ {
		oldRow := s.rOld.RawRowView(i)
		newRow := s.rNew.RawRowView(i)
		for d := 0; d < cfg.Dims; d++ {
			v := cfg.StepLength * s.centered()
			oldRow[d] = v
			newRow[d] = v
		}
	}

	s.dist.Rebuild(s.rOld)

	var eSum, e2Sum float64
	acceptedMoves := 0
	for cycle := 1; cycle <= nCycles; cycle++ {
		psiOld := s.psi.Eval(s.rOld, s.dist)
		for i := 0; i < cfg.Particles; i++ {
			oldRow := s.rOld.RawRowView(i)
			newRow := s.rNew.RawRowView(i)

			// Пробное смещение частицы i.
			for d := 0; d < cfg.Dims; d++ {
				newRow[d] = oldRow[d] + cfg.StepLength*s.centered()
			}

			s.dist.Update(i, s.rNew)

			psiNew := s.psi.Eval(s.rNew, s.dist)

			if s.rng.Float64() <= (psiNew*psiNew)/(psiOld*psiOld) {
				acceptedMoves++
				psiOld = psiNew
				copy(oldRow, newRow)
			} else {
				// Откат: кэш расстояний снова соответствует
				// неподвинутой конфигурации.
				s.dist.Update(i, s.rOld)
				copy(newRow, oldRow)
			}

			e := s.energy.LocalEnergy(s.rNew, s.dist)
			eSum += e
			e2Sum += e * e
		}
	}

	norm := float64(nCycles * cfg.Particles)
	energy := eSum / norm
	energySquared := e2Sum / norm
	return domain.Results{
		Energy:         energy,
		EnergySquared:  energySquared,
		Variance:       energySquared - energy*energy,
		Alpha:          s.alpha,
		Beta:           s.beta,
		AcceptanceRate: float64(acceptedMoves) / norm,
	}
}

// spanRange раскрывает (min, max, n) в линейную сетку значений.
func spanRange(r domain.ParamRange) []float64 {
	if r.N <= 1 {
		return []float64{r.Min}
	}
	return floats.Span(make([]float64, r.N), r.Min, r.Max)
}

// bestOf оставляет кандидата только при строгом уменьшении дисперсии,
// поэтому при равенстве выигрывает первый встреченный результат.
func bestOf(best, candidate domain.Results) domain.Results {
	if candidate.Variance < best.Variance {
		return candidate
	}
	return best
}

// Sweep перебирает декартово произведение сеток alpha x beta, пишет
// строку статистики для каждой точки и возвращает результат с
// минимальной дисперсией. Поток сбрасывается один раз по завершении
// перебора.
func (s *VMCSolver) Sweep(nCycles int, out io.Writer, alphaRange, betaRange domain.ParamRange) (domain.Results, error) {
	alphas := spanRange(alphaRange)
	betas := spanRange(betaRange)

	// Неисправный приёмник должен обнаружиться до начала выборки.
	if _, err := fmt.Fprintf(out, "# alpha beta <E> <E^2>\n"); err != nil {
		return domain.Results{}, fmt.Errorf("sweep output: %w", err)
	}

	best := domain.Results{Variance: math.MaxFloat64}
	for _, alpha := range alphas {
		for _, beta := range betas {
			s.SetParams(alpha, beta)
			res := s.RunMC(nCycles)

			if _, err := fmt.Fprintf(out, "%g %g %g %g\n",
				alpha, beta, res.Energy, res.EnergySquared); err != nil {
				return best, fmt.Errorf("sweep output: %w", err)
			}

			s.logger.Debug("sweep point",
				zap.Float64("alpha", alpha),
				zap.Float64("beta", beta),
				zap.Float64("energy", res.Energy),
				zap.Float64("variance", res.Variance),
				zap.Float64("acceptance", res.AcceptanceRate))

			best = bestOf(best, res)
		}
	}

	if f, ok := out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return best, fmt.Errorf("sweep output: %w", err)
		}
	}

	return best, nil
}
