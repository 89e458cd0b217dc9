package vmc

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DistanceMatrix кэширует попарные расстояния между частицами
// для текущей конфигурации. Хранится симметрично, индексация
// Between(i, j) не зависит от порядка аргументов.
type DistanceMatrix struct {
	n int
	d *mat.SymDense
}

func NewDistanceMatrix(particles int) *DistanceMatrix {
	return &DistanceMatrix{
		n: particles,
		d: mat.NewSymDense(particles, nil),
	}
}

// Rebuild пересчитывает все попарные расстояния с нуля, O(n^2).
// Вызывается один раз на стартовой конфигурации.
func (m *DistanceMatrix) Rebuild(r *mat.Dense) {
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			m.d.SetSym(i, j, floats.Distance(r.RawRowView(i), r.RawRowView(j), 2))
		}
	}
}

// Update пересчитывает только расстояния, затрагивающие particle.
// Должен вызываться после каждого пробного смещения и повторно
// после отката отклонённого хода.
func (m *DistanceMatrix) Update(particle int, r *mat.Dense) {
	row := r.RawRowView(particle)
	for other := 0; other < m.n; other++ {
		if other == particle {
			continue
		}
		m.d.SetSym(particle, other, floats.Distance(row, r.RawRowView(other), 2))
	}
}

func (m *DistanceMatrix) Between(i, j int) float64 {
	return m.d.At(i, j)
}

// Particles возвращает число частиц, на которое рассчитан кэш.
func (m *DistanceMatrix) Particles() int {
	return m.n
}
