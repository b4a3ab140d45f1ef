package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"transcribe-translate/internal/app/locale"
	"transcribe-translate/internal/app/model"
	"transcribe-translate/internal/app/publish"
	"transcribe-translate/internal/errors"
	"transcribe-translate/internal/metrics"
)

// Stage identifies where a pipeline invocation currently is
type Stage string

const (
	StageResolving    Stage = "resolving"
	StageStaging      Stage = "staging"
	StageTranscribing Stage = "transcribing"
	StageTranslating  Stage = "translating"
	StagePublishing   Stage = "publishing"
	StageDone         Stage = "done"
)

// Stages lists the happy-path stages in execution order
var Stages = []Stage{StageResolving, StageStaging, StageTranscribing, StageTranslating, StagePublishing, StageDone}

// Stager stages source media into a fetchable waveform URL
type Stager interface {
	Stage(ctx context.Context, sourceURL string) (string, error)
}

// Transcriber drives a recognition job against staged audio
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string, profile locale.Profile) (string, error)
}

// Translator converts recognized text to English
type Translator interface {
	Translate(ctx context.Context, text string, profile locale.Profile) (string, error)
}

// Publisher persists transcripts and notifies the downstream consumer
type Publisher interface {
	Publish(ctx context.Context, result *model.TranscriptResult) (*publish.Outcome, error)
}

// StageHook observes stage transitions; used by the CLI progress display
type StageHook func(stage Stage)

// Orchestrator sequences one invocation through the stages. Invocations
// are independent: each resolves its locale, stages media, drives one job
// and publishes results with no shared mutable state.
type Orchestrator struct {
	stager      Stager
	transcriber Transcriber
	translator  Translator
	publisher   Publisher
	logger      *zap.Logger
	hook        StageHook
}

// New creates a pipeline orchestrator
func New(stager Stager, transcriber Transcriber, translator Translator, publisher Publisher, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		stager:      stager,
		transcriber: transcriber,
		translator:  translator,
		publisher:   publisher,
		logger:      logger,
	}
}

// SetStageHook installs a stage transition observer. Must be called before
// Run; not safe to change while invocations are in flight.
func (o *Orchestrator) SetStageHook(hook StageHook) {
	o.hook = hook
}

// Run drives one invocation to completion. Any stage failure aborts later
// stages; repeated invocations with the same source URL produce a new job,
// file identifier and storage objects.
func (o *Orchestrator) Run(ctx context.Context, sourceURL, country string) (*model.TranscriptResult, *publish.Outcome, error) {
	fileID := uuid.New().String()
	log := o.logger.With(zap.String("file_id", fileID))

	log.Info("pipeline started",
		zap.String("source_url", sourceURL),
		zap.String("country", country))

	o.enter(StageResolving)
	profile, err := locale.Resolve(country)
	if err != nil {
		return nil, nil, o.fail(log, StageResolving, err)
	}

	o.enter(StageStaging)
	stagedURL, err := o.timed(StageStaging, func() (string, error) {
		return o.stager.Stage(ctx, sourceURL)
	})
	if err != nil {
		return nil, nil, o.fail(log, StageStaging, err)
	}

	o.enter(StageTranscribing)
	originalText, err := o.timed(StageTranscribing, func() (string, error) {
		return o.transcriber.Transcribe(ctx, stagedURL, profile)
	})
	if err != nil {
		return nil, nil, o.fail(log, StageTranscribing, err)
	}

	o.enter(StageTranslating)
	englishText, err := o.timed(StageTranslating, func() (string, error) {
		return o.translator.Translate(ctx, originalText, profile)
	})
	if err != nil {
		return nil, nil, o.fail(log, StageTranslating, err)
	}

	result := &model.TranscriptResult{
		FileID:       fileID,
		Country:      profile.CountryName,
		LanguageName: profile.LanguageName,
		OriginalText: originalText,
		EnglishText:  englishText,
	}

	o.enter(StagePublishing)
	start := time.Now()
	outcome, err := o.publisher.Publish(ctx, result)
	metrics.StageDurationSeconds.WithLabelValues(string(StagePublishing)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, outcome, o.fail(log, StagePublishing, err)
	}

	switch {
	case outcome.NotificationSent:
		metrics.WebhookAttemptsTotal.WithLabelValues("delivered").Inc()
	case outcome.DeliveryErr != nil:
		metrics.WebhookAttemptsTotal.WithLabelValues("failed").Inc()
		log.Warn("notification delivery exhausted", zap.Error(outcome.DeliveryErr))
	default:
		metrics.WebhookAttemptsTotal.WithLabelValues("skipped").Inc()
	}

	o.enter(StageDone)
	metrics.InvocationsTotal.WithLabelValues("succeeded").Inc()
	log.Info("pipeline finished",
		zap.String("country", result.Country),
		zap.String("language", result.LanguageName),
		zap.Int("original_len", len(result.OriginalText)),
		zap.Int("english_len", len(result.EnglishText)))

	return result, outcome, nil
}

func (o *Orchestrator) enter(stage Stage) {
	if o.hook != nil {
		o.hook(stage)
	}
}

func (o *Orchestrator) timed(stage Stage, fn func() (string, error)) (string, error) {
	start := time.Now()
	out, err := fn()
	metrics.StageDurationSeconds.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
	return out, err
}

func (o *Orchestrator) fail(log *zap.Logger, stage Stage, err error) error {
	metrics.InvocationsTotal.WithLabelValues("failed").Inc()
	metrics.StageFailuresTotal.WithLabelValues(string(stage)).Inc()
	log.Error("pipeline failed",
		zap.String("stage", string(stage)),
		zap.String("kind", string(errors.KindOf(err))),
		zap.Error(err))
	return err
}
