package domain

import (
	"errors"
	"fmt"
)

// Config представляет конфигурацию приложения
type Config struct {
	Dims        []int      `yaml:"dims"`
	Particles   []int      `yaml:"particles"`
	Estimators  []string   `yaml:"estimators"`
	Trap        string     `yaml:"trap"`
	OmegaHO     float64    `yaml:"omega_ho"`
	OmegaZ      float64    `yaml:"omega_z"`
	Interaction bool       `yaml:"interaction"`
	HardSphere  float64    `yaml:"a"`
	DiffStep    float64    `yaml:"h"`
	StepLength  float64    `yaml:"step_length"`
	Cycles      int        `yaml:"n_cycles"`
	Alpha       ParamRange `yaml:"alpha"`
	Beta        ParamRange `yaml:"beta"`
	Workers     int        `yaml:"workers"`
	BaseSeed    int64      `yaml:"base_seed"`
	SweepFile   string     `yaml:"sweep_file"`
	SummaryFile string     `yaml:"summary_file"`
	LogLevel    string     `yaml:"log_level"`
	LogFile     string     `yaml:"log_file"`
}

// ParamRange описывает линейную сетку вариационного параметра.
// При n <= 1 сетка вырождается в одну точку Min; вырожденные
// диапазоны задаются с min == max.
type ParamRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	N   int     `yaml:"n"`
}

// RunConfig представляет неизменяемые настройки одного запуска MC
type RunConfig struct {
	Dims        int
	Particles   int
	Trap        TrapType
	OmegaHO     float64
	OmegaZ      float64
	Interaction bool
	HardSphere  float64
	DiffStep    float64
	StepLength  float64
	Estimator   EstimatorMode
}

// Results представляет результат одного MC прогона
type Results struct {
	Energy         float64
	EnergySquared  float64
	Variance       float64
	Alpha          float64
	Beta           float64
	AcceptanceRate float64
}

// TrapType представляет геометрию ловушки
type TrapType int

const (
	TrapSymmetric TrapType = iota
	TrapElliptical
)

func (t TrapType) String() string {
	if t == TrapElliptical {
		return "elliptical"
	}
	return "symmetric"
}

// EstimatorMode представляет способ вычисления локальной энергии
type EstimatorMode int

const (
	EstimatorNumerical EstimatorMode = iota
	EstimatorAnalytic
)

func (m EstimatorMode) String() string {
	if m == EstimatorAnalytic {
		return "analytic"
	}
	return "numerical"
}

func (c *Config) GetTrapType() TrapType {
	switch c.Trap {

	case "elliptical":
		return TrapElliptical

	default:
		return TrapSymmetric
	}
}

func GetEstimatorMode(name string) EstimatorMode {
	switch name {

	case "analytic":
		return EstimatorAnalytic

	default:
		return EstimatorNumerical
	}
}

// RunConfigs раскрывает конфигурацию в список запусков
// (размерности x число частиц x режим оценки энергии).
func (c *Config) RunConfigs() []RunConfig {
	var runs []RunConfig
	for _, dims := range c.Dims {
		for _, particles := range c.Particles {
			for _, estimator := range c.Estimators {
				runs = append(runs, RunConfig{
					Dims:        dims,
					Particles:   particles,
					Trap:        c.GetTrapType(),
					OmegaHO:     c.OmegaHO,
					OmegaZ:      c.OmegaZ,
					Interaction: c.Interaction,
					HardSphere:  c.HardSphere,
					DiffStep:    c.DiffStep,
					StepLength:  c.StepLength,
					Estimator:   GetEstimatorMode(estimator),
				})
			}
		}
	}
	return runs
}

// Validate проверяет настройки перед созданием решателя.
func (c *RunConfig) Validate() error {
	if c.Dims < 1 || c.Dims > 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidDimensions, c.Dims)
	}
	if c.Particles < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidParticles, c.Particles)
	}
	if c.Trap == TrapElliptical && c.Dims != 3 {
		return fmt.Errorf("%w: got %d dims", ErrEllipticalTrapDims, c.Dims)
	}
	if c.DiffStep <= 0 {
		return fmt.Errorf("%w: h = %g", ErrInvalidStep, c.DiffStep)
	}
	if c.StepLength <= 0 {
		return fmt.Errorf("%w: step_length = %g", ErrInvalidStep, c.StepLength)
	}
	if c.Interaction && c.HardSphere <= 0 {
		return fmt.Errorf("%w: a = %g", ErrInvalidHardSphere, c.HardSphere)
	}
	return nil
}

var (
	ErrInvalidDimensions  = errors.New("dimensions must be 1, 2 or 3")
	ErrInvalidParticles   = errors.New("particle count must be positive")
	ErrEllipticalTrapDims = errors.New("elliptical trap requires 3 dimensions")
	ErrInvalidStep        = errors.New("step must be positive")
	ErrInvalidHardSphere  = errors.New("hard-sphere radius must be positive with interaction on")
)
