package vmc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"vmc-bosons/internal/domain"
)

// EnergyEstimator вычисляет локальную энергию в заданной конфигурации.
// Стратегия (численная или аналитическая) выбирается один раз при
// создании решателя.
type EnergyEstimator interface {
	LocalEnergy(r *mat.Dense, dist *DistanceMatrix) float64
}

func NewEnergyEstimator(cfg *domain.RunConfig, psi *WaveFunction) (EnergyEstimator, error) {
	switch cfg.Estimator {

	case domain.EstimatorAnalytic:
		if cfg.Trap == domain.TrapElliptical && cfg.Dims != 3 {
			return nil, fmt.Errorf("analytic estimator: %w", domain.ErrEllipticalTrapDims)
		}
		return newAnalyticEstimator(cfg, psi), nil

	default:
		return newNumericalEstimator(cfg, psi), nil
	}
}

// externalPotential = 0.5*omega_ho*(x^2+y^2) + 0.5*omega_z*z^2 для
// эллиптической 3D ловушки, иначе 0.5*omega_ho*|r|^2.
func externalPotential(cfg *domain.RunConfig, r *mat.Dense) float64 {
	var pot float64
	elliptical := cfg.Trap == domain.TrapElliptical && cfg.Dims == 3
	for i := 0; i < cfg.Particles; i++ {
		row := r.RawRowView(i)
		if elliptical {
			pot += cfg.OmegaHO*(row[0]*row[0]+row[1]*row[1]) + cfg.OmegaZ*row[2]*row[2]
		} else {
			pot += cfg.OmegaHO * floats.Dot(row, row)
		}
	}
	return 0.5 * pot
}

// interactionPotential возвращает MaxFloat64, если какая-то пара
// ближе радиуса жёсткой сферы: запрещённая конфигурация должна
// подавлять любую сумму, в которую входит.
func interactionPotential(cfg *domain.RunConfig, dist *DistanceMatrix) float64 {
	if !cfg.Interaction {
		return 0
	}
	for i := 0; i < cfg.Particles; i++ {
		for j := i + 1; j < cfg.Particles; j++ {
			if dist.Between(i, j) <= cfg.HardSphere {
				return math.MaxFloat64
			}
		}
	}
	return 0
}

// numericalEstimator считает кинетический член трёхточечной конечной
// разностью волновой функции по каждой координате.
type numericalEstimator struct {
	cfg *domain.RunConfig
	psi *WaveFunction
	h   float64
	h2  float64
}

func newNumericalEstimator(cfg *domain.RunConfig, psi *WaveFunction) *numericalEstimator {
	return &numericalEstimator{
		cfg: cfg,
		psi: psi,
		h:   cfg.DiffStep,
		h2:  1 / (cfg.DiffStep * cfg.DiffStep),
	}
}

func (e *numericalEstimator) LocalEnergy(r *mat.Dense, dist *DistanceMatrix) float64 {
	ek := e.kinetic(r, dist)
	return ek/e.psi.Eval(r, dist) + externalPotential(e.cfg, r) + interactionPotential(e.cfg, dist)
}

func (e *numericalEstimator) kinetic(r *mat.Dense, dist *DistanceMatrix) float64 {
	cfg := e.cfg
	ek := -2 * float64(cfg.Particles*cfg.Dims) * e.psi.Eval(r, dist)

	for i := 0; i < cfg.Particles; i++ {
		row := r.RawRowView(i)
		for d := 0; d < cfg.Dims; d++ {
			// Храним исходную координату отдельно, чтобы не копить
			// ошибки округления при добавлении/вычитании h.
			temp := row[d]

			// Парный множитель зависит от кэша расстояний, поэтому
			// при включённом взаимодействии кэш обновляется после
			// каждого возмущения координаты.

			row[d] = temp + e.h
			if cfg.Interaction {
				dist.Update(i, r)
			}
			ek += e.psi.Eval(r, dist) // Psi(R + h)

			row[d] = temp - e.h
			if cfg.Interaction {
				dist.Update(i, r)
			}
			ek += e.psi.Eval(r, dist) // Psi(R - h)

			row[d] = temp
			if cfg.Interaction {
				dist.Update(i, r)
			}
		}
	}
	return -0.5 * ek * e.h2
}

// analyticEstimator считает локальную энергию по замкнутой формуле,
// включая парные и трёхчастичные (через пары) поправки при
// включённом взаимодействии.
type analyticEstimator struct {
	cfg *domain.RunConfig
	psi *WaveFunction

	// Буферы на одну частицу, чтобы не аллоцировать в горячем цикле.
	rkSkew []float64
	rkj    []float64
	rki    []float64
	term   []float64
}

func newAnalyticEstimator(cfg *domain.RunConfig, psi *WaveFunction) *analyticEstimator {
	return &analyticEstimator{
		cfg:    cfg,
		psi:    psi,
		rkSkew: make([]float64, cfg.Dims),
		rkj:    make([]float64, cfg.Dims),
		rki:    make([]float64, cfg.Dims),
		term:   make([]float64, cfg.Dims),
	}
}

func (e *analyticEstimator) LocalEnergy(r *mat.Dense, dist *DistanceMatrix) float64 {
	cfg := e.cfg
	alpha, beta := e.psi.alpha, e.psi.beta
	a := cfg.HardSphere
	skewed := e.psi.skewed()

	oneBodyTerm := float64(cfg.Dims)
	if skewed {
		oneBodyTerm = 2 + beta
	}

	var sum float64
	for k := 0; k < cfg.Particles; k++ {
		rk := r.RawRowView(k)
		copy(e.rkSkew, rk)
		if skewed {
			e.rkSkew[2] *= beta
		}

		sum += 2 * alpha * (2*alpha*floats.Dot(e.rkSkew, e.rkSkew) - oneBodyTerm)

		if !cfg.Interaction {
			continue
		}

		for d := range e.term {
			e.term[d] = 0
		}
		for j := 0; j < cfg.Particles; j++ {
			if j == k {
				continue
			}
			floats.SubTo(e.rkj, rk, r.RawRowView(j))
			rkjNorm := dist.Between(k, j)
			rkj2 := rkjNorm * rkjNorm

			floats.AddScaled(e.term, a/(rkj2*(rkjNorm-a)), e.rkj)

			sum += a*(a-2*rkjNorm)/(rkj2*(rkjNorm-a)*(rkjNorm-a)) +
				2*a/(rkj2*(rkjNorm-a))

			for i := 0; i < cfg.Particles; i++ {
				if i == k {
					continue
				}
				floats.SubTo(e.rki, rk, r.RawRowView(i))
				rkiNorm := dist.Between(k, i)
				rki2 := rkiNorm * rkiNorm

				sum += floats.Dot(e.rki, e.rkj) *
					(a * a / (rki2 * rkj2 * (rkiNorm - a) * (rkjNorm - a)))
			}
		}
		sum -= 4 * alpha * floats.Dot(e.rkSkew, e.term)
	}
	return externalPotential(cfg, r) + interactionPotential(cfg, dist) - 0.5*sum
}
