package infrastructure

import (
	"flag"
	"os"
	"runtime"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"vmc-bosons/internal/domain"
)

type YAMLConfigReader struct {
	logger *zap.Logger
}

func NewYAMLConfigReader(logger *zap.Logger) *YAMLConfigReader {
	return &YAMLConfigReader{logger: logger}
}

func (r *YAMLConfigReader) ReadConfig(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config domain.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Применяем аргументы командной строки
	r.applyCommandLineFlags(&config, os.Args[1:])

	// Устанавливаем значения по умолчанию
	r.setDefaults(&config)

	return &config, nil
}

func (r *YAMLConfigReader) applyCommandLineFlags(config *domain.Config, args []string) {
	fs := flag.NewFlagSet("vmc", flag.ContinueOnError)

	// Флаг -config принадлежит main, но объявляется и здесь, иначе
	// разбор оборвётся на нём и отбросит остальные переопределения.
	fs.String("config", "", "Path to config file")

	cycles := fs.Int("cycles", config.Cycles, "Number of MC cycles per run")
	workers := fs.Int("workers", config.Workers, "Number of workers")
	baseSeed := fs.Int64("base-seed", config.BaseSeed, "Base RNG seed")
	stepLength := fs.Float64("step-length", config.StepLength, "Metropolis step length")
	logLevel := fs.String("log-level", config.LogLevel, "Log level")
	sweepFile := fs.String("sweep-file", config.SweepFile, "Sweep output file")

	// При неизвестном флаге оверлей не применяется целиком.
	if err := fs.Parse(args); err != nil {
		r.logger.Debug("command line flags not applied", zap.Error(err))
		return
	}

	config.Cycles = *cycles
	config.Workers = *workers
	config.BaseSeed = *baseSeed
	config.StepLength = *stepLength
	config.LogLevel = *logLevel
	config.SweepFile = *sweepFile
}

func (r *YAMLConfigReader) setDefaults(config *domain.Config) {
	if len(config.Dims) == 0 {
		config.Dims = []int{3}
	}
	if len(config.Particles) == 0 {
		config.Particles = []int{10}
	}
	if len(config.Estimators) == 0 {
		config.Estimators = []string{"numerical"}
	}
	if config.OmegaHO == 0 {
		config.OmegaHO = 1
	}
	if config.OmegaZ == 0 {
		config.OmegaZ = 1
	}
	if config.DiffStep == 0 {
		config.DiffStep = 0.001
	}
	if config.StepLength == 0 {
		config.StepLength = 1
	}
	if config.Cycles == 0 {
		config.Cycles = 100000
	}
	if config.Alpha.N == 0 {
		config.Alpha = domain.ParamRange{Min: 0.5, Max: 0.5, N: 1}
	}
	if config.Beta.N == 0 {
		config.Beta = domain.ParamRange{Min: 1, Max: 1, N: 1}
	}
	if config.Workers == 0 {
		config.Workers = max(1, runtime.NumCPU()-1)
	}
	if config.BaseSeed == 0 {
		config.BaseSeed = 12345
	}
	if config.SweepFile == "" {
		config.SweepFile = "sweep.txt"
	}
	if config.SummaryFile == "" {
		config.SummaryFile = "summary.txt"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}
