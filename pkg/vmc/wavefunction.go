package vmc

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"vmc-bosons/internal/domain"
)

// WaveFunction вычисляет пробную волновую функцию:
// гауссов одночастичный множитель на парный коррелятор.
type WaveFunction struct {
	cfg   *domain.RunConfig
	alpha float64
	beta  float64
}

func NewWaveFunction(cfg *domain.RunConfig) *WaveFunction {
	return &WaveFunction{cfg: cfg, beta: 1}
}

// SetParams фиксирует вариационные параметры на время одного прогона.
func (w *WaveFunction) SetParams(alpha, beta float64) {
	w.alpha = alpha
	w.beta = beta
}

func (w *WaveFunction) skewed() bool {
	return w.cfg.Trap == domain.TrapElliptical && w.cfg.Dims == 3
}

// SingleBody возвращает exp(-alpha * sum_i |r_i|^2); для эллиптической
// 3D ловушки ось z входит с весом beta.
func (w *WaveFunction) SingleBody(r *mat.Dense) float64 {
	var g float64
	if w.skewed() {
		for i := 0; i < w.cfg.Particles; i++ {
			row := r.RawRowView(i)
			g += row[0]*row[0] + row[1]*row[1] + w.beta*row[2]*row[2]
		}
	} else {
		for i := 0; i < w.cfg.Particles; i++ {
			row := r.RawRowView(i)
			g += floats.Dot(row, row)
		}
	}
	return math.Exp(-w.alpha * g)
}

// PairFactor возвращает произведение (1 - a/r_ij) по всем парам.
// Ровно ноль, если какая-то пара ближе радиуса жёсткой сферы.
func (w *WaveFunction) PairFactor(dist *DistanceMatrix) float64 {
	if !w.cfg.Interaction {
		return 1
	}
	a := w.cfg.HardSphere
	f := 1.0
	for i := 0; i < w.cfg.Particles; i++ {
		for j := i + 1; j < w.cfg.Particles; j++ {
			rij := dist.Between(i, j)
			if rij <= a {
				return 0
			}
			f *= 1 - a/rij
		}
	}
	return f
}

// Eval возвращает значение пробной волновой функции. Чистая функция
// от конфигурации, параметров и кэша расстояний.
func (w *WaveFunction) Eval(r *mat.Dense, dist *DistanceMatrix) float64 {
	return w.SingleBody(r) * w.PairFactor(dist)
}
