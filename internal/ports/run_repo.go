package ports

import (
	"context"
	"time"
)

// RunRecord — метаданные одного прогона пайплайна. Текст и аудио сюда не попадают.
type RunRecord struct {
	ID          string
	Channel     Channel
	Format      AudioFormat
	Outcome     string // "done" или вид ошибки
	FailedStage string
	Timings     StageTimings
	CreatedAt   time.Time
}

type RunRecorder interface {
	Record(ctx context.Context, rec RunRecord) error
}
