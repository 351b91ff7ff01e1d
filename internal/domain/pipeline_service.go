package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Vovarama1992/kz_voice/internal/ports"
)

type State int

const (
	StateIngesting State = iota
	StateTranscribing
	StateGenerating
	StateSynthesizing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIngesting:
		return "ingesting"
	case StateTranscribing:
		return "transcribing"
	case StateGenerating:
		return "generating"
	case StateSynthesizing:
		return "synthesizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

const recordTimeout = 2 * time.Second

// Pipeline — ingest → transcribe → generate → synthesize.
// Общих изменяемых данных между вызовами нет, клиенты провайдеров создаются один раз при старте.
type Pipeline struct {
	stt      *TranscriptionService
	llm      *ResponseService
	tts      *SynthesisService
	recorder ports.RunRecorder
	log      *zap.Logger

	now func() time.Time
}

func NewPipeline(
	stt *TranscriptionService,
	llm *ResponseService,
	tts *SynthesisService,
	recorder ports.RunRecorder,
	log *zap.Logger,
) *Pipeline {
	return &Pipeline{
		stt:      stt,
		llm:      llm,
		tts:      tts,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

// run — состояние одного вызова
type run struct {
	id      string
	channel ports.Channel
	state   State
	format  ports.AudioFormat
	timings ports.StageTimings
	log     *zap.Logger
}

func (r *run) enter(s State) {
	r.log.Debug("[pipeline] transition", zap.Stringer("from", r.state), zap.Stringer("to", s))
	r.state = s
}

func (p *Pipeline) Run(ctx context.Context, channel ports.Channel, data []byte) (*ports.PipelineResult, error) {
	r := &run{
		id:      uuid.NewString(),
		channel: channel,
		state:   StateIngesting,
	}
	r.log = p.log.With(zap.String("run_id", r.id), zap.String("channel", string(channel)))
	r.log.Info("[pipeline] start", zap.Int("bytes", len(data)))

	// 1. ingest
	t := p.now()
	audio, err := Ingest(data)
	r.timings.Ingest = p.now().Sub(t)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}
	r.format = audio.Format
	r.log.Info("[pipeline] audio classified", zap.String("encoding", audio.Format.String()))

	// 2. transcribe
	r.enter(StateTranscribing)
	t = p.now()
	transcript, err := p.stt.Transcribe(ctx, audio)
	r.timings.Transcribe = p.now().Sub(t)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}
	r.log.Info("[pipeline] transcribed",
		zap.String("transcript", transcript.Text),
		zap.Float64("confidence", transcript.Confidence),
		zap.Duration("took", r.timings.Transcribe),
	)

	// 3. generate
	r.enter(StateGenerating)
	t = p.now()
	reply, err := p.llm.Generate(ctx, transcript.Text)
	r.timings.Generate = p.now().Sub(t)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}
	r.log.Info("[pipeline] generated", zap.String("reply", reply), zap.Duration("took", r.timings.Generate))

	// 4. synthesize
	r.enter(StateSynthesizing)
	t = p.now()
	out, err := p.tts.Synthesize(ctx, reply)
	r.timings.Synthesize = p.now().Sub(t)
	if err != nil {
		return nil, p.fail(ctx, r, err)
	}

	r.enter(StateDone)
	r.log.Info("[pipeline] done",
		zap.Int("audio_bytes", len(out.Data)),
		zap.Duration("stt", r.timings.Transcribe),
		zap.Duration("llm", r.timings.Generate),
		zap.Duration("tts", r.timings.Synthesize),
		zap.Duration("total", r.timings.Total()),
	)
	p.record(ctx, r, "done", "")

	return &ports.PipelineResult{
		RunID:      r.id,
		Format:     audio.Format,
		Transcript: transcript,
		Reply:      reply,
		Audio:      out,
		Timings:    r.timings,
	}, nil
}

// Reply — текстовый путь чата: только генерация, без STT/TTS.
func (p *Pipeline) Reply(ctx context.Context, text string) string {
	return p.llm.Answer(ctx, text)
}

func (p *Pipeline) fail(ctx context.Context, r *run, err error) error {
	failedIn := r.state
	r.enter(StateFailed)
	r.log.Warn("[pipeline] failed",
		zap.Stringer("state", failedIn),
		zap.String("kind", string(KindOf(err))),
		zap.Duration("total", r.timings.Total()),
		zap.Error(err),
	)
	p.record(ctx, r, string(KindOf(err)), string(StageOf(err)))
	return err
}

func (p *Pipeline) record(ctx context.Context, r *run, outcome, stage string) {
	if p.recorder == nil {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	err := p.recorder.Record(rctx, ports.RunRecord{
		ID:          r.id,
		Channel:     r.channel,
		Format:      r.format,
		Outcome:     outcome,
		FailedStage: stage,
		Timings:     r.timings,
		CreatedAt:   p.now(),
	})
	if err != nil {
		r.log.Warn("[pipeline] run record failed", zap.Error(err))
	}
}

var _ ports.VoicePipeline = (*Pipeline)(nil)
