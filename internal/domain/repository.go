package domain

// ConfigReader интерфейс для чтения конфигурации
type ConfigReader interface {
	ReadConfig(path string) (*Config, error)
}

// SummaryWriter интерфейс для записи итоговой таблицы
type SummaryWriter interface {
	WriteSummary(filename string, rows []SummaryRow) error
}

// Seeder выдаёт детерминированные сиды исполняемых контекстов,
// чтобы никакие два контекста не делили псевдослучайную
// последовательность.
type Seeder interface {
	ContextSeed(baseSeed int64, workers, workerID int) int64
}
