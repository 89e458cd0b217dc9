package infrastructure

import (
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// RankEnv переменная окружения с номером процесса при запуске
// нескольких независимых процессов (например, из планировщика).
const RankEnv = "VMC_WORKER_RANK"

// WorkerBootstrap устанавливает идентичность процесса ровно один раз
// и выводит из неё детерминированный сид генератора. Одиночный
// процесс получает ранг 0.
type WorkerBootstrap struct {
	logger *zap.Logger

	initOnce  sync.Once
	finalOnce sync.Once
	rank      int
}

func NewWorkerBootstrap(logger *zap.Logger) *WorkerBootstrap {
	return &WorkerBootstrap{logger: logger}
}

// Initialize определяет ранг процесса; повторные вызовы возвращают
// тот же ранг без побочных эффектов.
func (b *WorkerBootstrap) Initialize() int {
	b.initOnce.Do(func() {
		if v, ok := os.LookupEnv(RankEnv); ok {
			rank, err := strconv.Atoi(v)
			if err != nil || rank < 0 {
				b.logger.Warn("invalid worker rank, falling back to 0", zap.String("value", v))
			} else {
				b.rank = rank
			}
		}
		b.logger.Info("worker initialized", zap.Int("rank", b.rank))
	})
	return b.rank
}

// ContextSeed возвращает сид воркера workerID из пула в workers
// воркеров: ранг процесса растягивается на размер пула, поэтому при
// одинаковом числе воркеров контексты разных процессов никогда не
// совпадают по сиду.
func (b *WorkerBootstrap) ContextSeed(baseSeed int64, workers, workerID int) int64 {
	return baseSeed + int64(b.Initialize()*workers+workerID)
}

// Seed возвращает сид процесса с единственным контекстом выборки:
// baseSeed + rank.
func (b *WorkerBootstrap) Seed(baseSeed int64) int64 {
	return b.ContextSeed(baseSeed, 1, 0)
}

// Finalize освобождает ресурсы процесса; идемпотентен.
func (b *WorkerBootstrap) Finalize() {
	b.finalOnce.Do(func() {
		b.logger.Info("worker finalized", zap.Int("rank", b.rank))
		b.logger.Sync()
	})
}
