package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid_input"
	KindNoSpeechDetected    ErrorKind = "no_speech_detected"
	KindEmptyGeneration     ErrorKind = "empty_generation"
	KindSynthesisFailed     ErrorKind = "synthesis_failed"
	KindUpstreamTimeout     ErrorKind = "upstream_timeout"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
)

type Stage string

const (
	StageIngest     Stage = "ingest"
	StageTranscribe Stage = "transcribe"
	StageGenerate   Stage = "generate"
	StageSynthesize Stage = "synthesize"
	StageDownload   Stage = "download"
)

var (
	ErrEmptyAudio    = errors.New("audio is empty")
	ErrAudioTooLarge = errors.New("audio exceeds size limit")
	ErrEmptyText     = errors.New("text is empty")
	ErrTextTooLong   = errors.New("text exceeds length limit")
)

// PipelineError — ошибка стадии. Message и Err только для логов,
// пользователю текст выбирает канал.
type PipelineError struct {
	Kind    ErrorKind
	Stage   Stage
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Stage, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Stage, e.Kind, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func newStageError(kind ErrorKind, stage Stage, msg string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Stage: stage, Message: msg, Err: err}
}

// upstreamError — таймаут или недоступность провайдера
func upstreamError(stage Stage, msg string, err error) *PipelineError {
	if isTimeout(err) {
		return newStageError(KindUpstreamTimeout, stage, msg, err)
	}
	return newStageError(KindUpstreamUnavailable, stage, msg, err)
}

// UpstreamError оборачивает ошибку сети/провайдера вне пайплайна (например, загрузка файла из чата).
func UpstreamError(stage Stage, msg string, err error) error {
	return upstreamError(stage, msg, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// KindOf возвращает вид ошибки или "" если это не PipelineError.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

func StageOf(err error) Stage {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// IsUpstream — сбой внешнего сервиса, о котором стоит сообщить операторам
func IsUpstream(err error) bool {
	switch KindOf(err) {
	case KindUpstreamTimeout, KindUpstreamUnavailable, KindSynthesisFailed:
		return true
	}
	return false
}
