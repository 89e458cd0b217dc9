package domain

import "time"

// SweepTask задача одного вариационного прогона
type SweepTask struct {
	ID     int
	Run    RunConfig
	Cycles int
	Alpha  ParamRange
	Beta   ParamRange
	Result chan<- *SweepOutcome
}

// SweepOutcome результат прогона вместе с потоком записей
type SweepOutcome struct {
	ID      int
	Run     RunConfig
	Best    Results
	Stream  []byte
	Elapsed time.Duration
	Err     error
}

// SummaryRow строка итоговой таблицы драйвера
type SummaryRow struct {
	Run     RunConfig
	Best    Results
	Elapsed time.Duration
}
