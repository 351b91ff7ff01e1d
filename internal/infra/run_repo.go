package infra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

// только метаданные: ни текста, ни аудио
const createRunsTable = `
	CREATE TABLE IF NOT EXISTS pipeline_runs (
		id             UUID PRIMARY KEY,
		channel        TEXT NOT NULL,
		format         TEXT NOT NULL DEFAULT '',
		outcome        TEXT NOT NULL,
		failed_stage   TEXT NOT NULL DEFAULT '',
		ingest_ms      BIGINT NOT NULL DEFAULT 0,
		transcribe_ms  BIGINT NOT NULL DEFAULT 0,
		generate_ms    BIGINT NOT NULL DEFAULT 0,
		synthesize_ms  BIGINT NOT NULL DEFAULT 0,
		total_ms       BIGINT NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL
	)`

type runRepo struct {
	db *sql.DB
}

func NewRunRepo(db *sql.DB) ports.RunRecorder {
	return &runRepo{db: db}
}

// EnsureRunsTable вызывается один раз при старте
func EnsureRunsTable(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createRunsTable); err != nil {
		return fmt.Errorf("create pipeline_runs: %w", err)
	}
	return nil
}

func (r *runRepo) Record(ctx context.Context, rec ports.RunRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pipeline_runs
			(id, channel, format, outcome, failed_stage,
			 ingest_ms, transcribe_ms, generate_ms, synthesize_ms, total_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		rec.ID,
		string(rec.Channel),
		string(rec.Format),
		rec.Outcome,
		rec.FailedStage,
		rec.Timings.Ingest.Milliseconds(),
		rec.Timings.Transcribe.Milliseconds(),
		rec.Timings.Generate.Milliseconds(),
		rec.Timings.Synthesize.Milliseconds(),
		rec.Timings.Total().Milliseconds(),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert pipeline run: %w", err)
	}
	return nil
}
