package app

import (
	"bytes"
	"io"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"vmc-bosons/internal/domain"
	"vmc-bosons/pkg/vmc"
)

// SweepRunner прогоняет независимые вариационные переборы на пуле
// воркеров. У каждого воркера собственный генератор случайных чисел,
// свои буферы координат и свой кэш расстояний: прогоны не делят
// никакого изменяемого состояния.
type SweepRunner struct {
	logger *zap.Logger
	config *domain.Config
	seeder domain.Seeder
}

func NewSweepRunner(logger *zap.Logger, config *domain.Config, seeder domain.Seeder) *SweepRunner {
	return &SweepRunner{
		logger: logger,
		config: config,
		seeder: seeder,
	}
}

// Run выполняет все прогоны из конфигурации и пишет их потоки записей
// в sink по мере завершения. Возвращает строки итоговой таблицы в
// порядке постановки задач.
func (r *SweepRunner) Run(sink io.Writer) ([]domain.SummaryRow, error) {
	runs := r.config.RunConfigs()

	var wg sync.WaitGroup
	taskChan := make(chan domain.SweepTask, r.config.Workers*2)
	resultChan := make(chan *domain.SweepOutcome, len(runs))

	// Запускаем воркеры
	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		r.logger.Info("Starting worker", zap.Int("id", i))
		go r.worker(i, taskChan, resultChan, &wg)
	}

	// Отправляем задачи
	go func() {
		for id, run := range runs {
			taskChan <- domain.SweepTask{
				ID:     id,
				Run:    run,
				Cycles: r.config.Cycles,
				Alpha:  r.config.Alpha,
				Beta:   r.config.Beta,
				Result: resultChan,
			}
		}
		close(taskChan)
	}()

	// Собираем результаты
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var outcomes []*domain.SweepOutcome
	var firstErr error
	for outcome := range resultChan {
		if outcome.Err != nil {
			r.logger.Error("Sweep failed",
				zap.Int("task", outcome.ID),
				zap.Error(outcome.Err))
			if firstErr == nil {
				firstErr = outcome.Err
			}
			continue
		}
		if _, err := sink.Write(outcome.Stream); err != nil && firstErr == nil {
			firstErr = err
		}
		outcomes = append(outcomes, outcome)
	}

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].ID < outcomes[j].ID
	})

	rows := make([]domain.SummaryRow, 0, len(outcomes))
	for _, outcome := range outcomes {
		rows = append(rows, domain.SummaryRow{
			Run:     outcome.Run,
			Best:    outcome.Best,
			Elapsed: outcome.Elapsed,
		})
	}
	return rows, firstErr
}

func (r *SweepRunner) worker(id int, tasks <-chan domain.SweepTask, results chan<- *domain.SweepOutcome, wg *sync.WaitGroup) {
	defer wg.Done()

	rng := rand.New(rand.NewSource(r.seeder.ContextSeed(r.config.BaseSeed, r.config.Workers, id)))

	for task := range tasks {
		r.logger.Debug("Processing sweep",
			zap.Int("worker", id),
			zap.Int("task", task.ID),
			zap.Int("dims", task.Run.Dims),
			zap.Int("particles", task.Run.Particles),
			zap.String("estimator", task.Run.Estimator.String()))

		task.Result <- r.runTask(task, rng)
	}
}

func (r *SweepRunner) runTask(task domain.SweepTask, rng *rand.Rand) *domain.SweepOutcome {
	outcome := &domain.SweepOutcome{ID: task.ID, Run: task.Run}

	solver, err := vmc.NewVMCSolver(r.logger, &task.Run, rng)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	// Каждый перебор пишет в свой буфер; общий sink получает целые
	// блоки, так что записи параллельных прогонов не перемешиваются.
	var buf bytes.Buffer
	start := time.Now()
	best, err := solver.Sweep(task.Cycles, &buf, task.Alpha, task.Beta)
	outcome.Elapsed = time.Since(start)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Best = best
	outcome.Stream = buf.Bytes()
	return outcome
}
