package main

import (
	"flag"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vmc-bosons/internal/app"
	"vmc-bosons/internal/infrastructure"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	// Инициализация логгера
	logger := initLogger("info")
	defer logger.Sync()

	// Чтение конфигурации
	configReader := infrastructure.NewYAMLConfigReader(logger)
	config, err := configReader.ReadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to read config", zap.Error(err))
	}

	// Обновляем уровень логирования
	logger = initLogger(config.LogLevel, config.LogFile)

	// Идентичность процесса и детерминированный сид
	bootstrap := infrastructure.NewWorkerBootstrap(logger)
	rank := bootstrap.Initialize()
	defer bootstrap.Finalize()

	// Инициализация компонентов
	resultWriter := infrastructure.NewTXTResultWriter(logger)
	runner := app.NewSweepRunner(logger, config, bootstrap)

	// Поток записей перебора открывается до начала выборки
	sweepStream, err := resultWriter.OpenSweepStream(config.SweepFile)
	if err != nil {
		logger.Fatal("Failed to open sweep stream", zap.Error(err))
	}

	logger.Info("Starting variational Monte Carlo",
		zap.Ints("dims", config.Dims),
		zap.Ints("particles", config.Particles),
		zap.Strings("estimators", config.Estimators),
		zap.Int("cycles", config.Cycles),
		zap.Int("workers", config.Workers),
		zap.Int("rank", rank))

	rows, runErr := runner.Run(sweepStream)

	if err := sweepStream.Close(); err != nil {
		logger.Error("Failed to close sweep stream", zap.Error(err))
	}

	if runErr != nil {
		logger.Fatal("Sweep failed", zap.Error(runErr))
	}

	// Запись итоговой таблицы
	if err := resultWriter.WriteSummary(config.SummaryFile, rows); err != nil {
		logger.Fatal("Failed to write summary",
			zap.String("file", config.SummaryFile),
			zap.Error(err))
	}

	logger.Info("Variational Monte Carlo completed successfully",
		zap.Int("runs", len(rows)),
		zap.String("sweep_file", config.SweepFile),
		zap.String("summary_file", config.SummaryFile))
}

// initLogger initializes the logger with the specified level and log file name.
func initLogger(level string, logfileName ...string) *zap.Logger {
	config := zap.NewProductionConfig()

	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	outputPath := make([]string, 0, len(logfileName)+1)
	for _, item := range logfileName {
		if item != "" {
			outputPath = append(outputPath, item)
		}
	}
	if len(outputPath) == 0 {
		outputPath = append(outputPath, "stderr")
	}

	config.OutputPaths = outputPath
	config.ErrorOutputPaths = outputPath
	config.EncoderConfig.TimeKey = "t"
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	config.DisableCaller = false

	logger, _ := config.Build()
	return logger
}
