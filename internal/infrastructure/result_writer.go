package infrastructure

import (
	"bufio"
	"fmt"
	"os"

	"go.uber.org/zap"

	"vmc-bosons/internal/domain"
)

// SweepStream буферизованный приёмник построчных записей перебора.
// Сбрасывается в заранее определённых точках, закрытие выполняет
// финальный Flush.
type SweepStream struct {
	file *os.File
	*bufio.Writer
}

func (s *SweepStream) Close() error {
	if err := s.Writer.Flush(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

type TXTResultWriter struct {
	logger *zap.Logger
}

func NewTXTResultWriter(logger *zap.Logger) *TXTResultWriter {
	return &TXTResultWriter{logger: logger}
}

// OpenSweepStream открывает файл под поток записей перебора.
// Непригодный файл обнаруживается здесь, до начала выборки.
func (w *TXTResultWriter) OpenSweepStream(filename string) (*SweepStream, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("sweep stream %q: %w", filename, err)
	}
	return &SweepStream{file: file, Writer: bufio.NewWriter(file)}, nil
}

// WriteSummary записывает итоговую таблицу по всем прогонам.
func (w *TXTResultWriter) WriteSummary(filename string, rows []domain.SummaryRow) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	fmt.Fprintln(writer, "Dims, Particles, Estimator, Energy, Energy^2, Variance, alpha, beta, acceptance rate, time(ms)")
	for _, row := range rows {
		fmt.Fprintf(writer, "%d, %3d, %9s, %g, %g, %g, %g, %g, %g, %d\n",
			row.Run.Dims,
			row.Run.Particles,
			row.Run.Estimator,
			row.Best.Energy,
			row.Best.EnergySquared,
			row.Best.Variance,
			row.Best.Alpha,
			row.Best.Beta,
			row.Best.AcceptanceRate,
			row.Elapsed.Milliseconds())
	}

	return nil
}
