// Package pipeline sequences the cleaning stages over one batch and
// hands the result to the storage collaborators.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ethiodata/telecorpus/internal/aggregate"
	"github.com/ethiodata/telecorpus/internal/extract"
	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/models"
	"github.com/ethiodata/telecorpus/internal/publisher"
	"github.com/ethiodata/telecorpus/internal/sanitize"
	"github.com/ethiodata/telecorpus/internal/textnorm"
	"github.com/ethiodata/telecorpus/internal/validate"
)

// Stage names the states of one pipeline run, in order.
type Stage string

// Pipeline stages.
const (
	StageLoaded             Stage = "Loaded"
	StageLinkExtracted      Stage = "LinkExtracted"
	StageDeduplicated       Stage = "Deduplicated"
	StageValuesFilled       Stage = "ValuesFilled"
	StageAggregated         Stage = "Aggregated"
	StageFormatStandardized Stage = "FormatStandardized"
	StageValidated          Stage = "Validated"
	StageStored             Stage = "Stored"
)

// BatchSource produces the raw batch for one run.
type BatchSource interface {
	Load(ctx context.Context) ([]models.RawRecord, error)
}

// BatchSink consumes the full cleaned batch, once per run.
type BatchSink interface {
	Name() string
	Store(ctx context.Context, batch []models.CleanedRecord) error
}

// RunPublisher emits a summary event after a run.
type RunPublisher interface {
	PublishRunCompleted(ctx context.Context, event publisher.RunCompletedEvent) error
}

// Pipeline owns the batch for the lifetime of one run. No state
// survives between runs.
type Pipeline struct {
	source     BatchSource
	sinks      []BatchSink
	events     RunPublisher
	sanitizer  *sanitize.Sanitizer
	aggregator *aggregate.Aggregator
	validator  *validate.Validator
	log        *logger.Logger
}

// New creates a pipeline. events may be nil when no event bus is
// configured.
func New(
	source BatchSource,
	sinks []BatchSink,
	events RunPublisher,
	sanitizer *sanitize.Sanitizer,
	aggregator *aggregate.Aggregator,
	validator *validate.Validator,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		source:     source,
		sinks:      sinks,
		events:     events,
		sanitizer:  sanitizer,
		aggregator: aggregator,
		validator:  validator,
		log:        log,
	}
}

// Result reports what one run did.
type Result struct {
	RunID       uuid.UUID
	Stage       Stage // last stage reached
	Loaded      int
	Duplicates  int
	Groups      int
	StoreErrors int
	Diagnostics validate.Diagnostics
	Cleaned     []models.CleanedRecord
}

// Run processes one batch end to end. A failure in any transform stage
// aborts the batch; the storage stage is the only one permitted partial
// failure (one sink failing does not block the others).
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uuid.New()}

	batch, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	result.Loaded = len(batch)
	p.advance(result, StageLoaded)

	// empty batch is a no-op terminal state, not an error
	if len(batch) == 0 {
		p.log.Warn().Str("run_id", result.RunID.String()).Msg("pipeline: no data to process")
		return result, nil
	}

	batch = extractLinks(batch)
	p.advance(result, StageLinkExtracted)

	batch, removed := p.sanitizer.RemoveDuplicates(batch)
	result.Duplicates = len(removed)
	p.advance(result, StageDeduplicated)

	batch = p.sanitizer.FillMissing(batch)
	p.advance(result, StageValuesFilled)

	cleaned := p.aggregator.Aggregate(batch)
	result.Groups = len(cleaned)
	p.advance(result, StageAggregated)

	for i := range cleaned {
		standardize(&cleaned[i])
	}
	p.advance(result, StageFormatStandardized)

	result.Diagnostics = p.validator.Check(cleaned)
	p.advance(result, StageValidated)

	result.StoreErrors = p.store(ctx, cleaned)
	result.Cleaned = cleaned
	p.advance(result, StageStored)

	p.publishSummary(ctx, result)

	return result, nil
}

// advance moves the run to the next stage and logs the transition.
func (p *Pipeline) advance(result *Result, stage Stage) {
	result.Stage = stage
	p.log.Debug().
		Str("run_id", result.RunID.String()).
		Str("stage", string(stage)).
		Msg("pipeline: stage complete")
}

// extractLinks pulls embedded URLs out of each record's text before any
// normalization strips them.
func extractLinks(batch []models.RawRecord) []models.RawRecord {
	for i := range batch {
		batch[i].Links = extract.Links(batch[i].TextValue())
	}
	return batch
}

// standardize enriches one aggregated record: extract emoji and YouTube
// links before the normalization chain removes them, then normalize the
// text and tidy the remaining fields.
func standardize(rec *models.CleanedRecord) {
	rec.EmojiUsed = extract.Emojis(rec.Text)
	rec.Text = extract.StripEmojis(rec.Text)

	rec.YouTubeLinks = extract.YouTubeLinks(rec.Text)
	rec.Text = extract.StripYouTubeLinks(rec.Text)

	rec.Text = textnorm.Normalize(rec.Text)
	if rec.Text == "" {
		rec.Text = models.NoMessage
	}

	rec.ChannelUsername = strings.ToLower(strings.TrimSpace(rec.ChannelUsername))
	rec.ChannelTitle = strings.TrimSpace(rec.ChannelTitle)

	for i, path := range rec.MediaPaths {
		rec.MediaPaths[i] = strings.Join(strings.Fields(path), "")
	}
}

// store hands the batch to every sink; a sink failure is logged and
// counted, never propagated.
func (p *Pipeline) store(ctx context.Context, batch []models.CleanedRecord) int {
	errors := 0
	for _, sink := range p.sinks {
		if err := sink.Store(ctx, batch); err != nil {
			p.log.Error().Err(err).Str("sink", sink.Name()).Msg("pipeline: sink failed")
			errors++
			continue
		}
		p.log.Info().Int("count", len(batch)).Str("sink", sink.Name()).Msg("pipeline: batch stored")
	}
	return errors
}

// publishSummary emits the run event; a publish failure is logged only.
func (p *Pipeline) publishSummary(ctx context.Context, result *Result) {
	if p.events == nil {
		return
	}

	event := publisher.RunCompletedEvent{
		RunID:       result.RunID,
		Loaded:      result.Loaded,
		Duplicates:  result.Duplicates,
		Groups:      result.Groups,
		StoreErrors: result.StoreErrors,
		CompletedAt: time.Now().UTC(),
	}
	if err := p.events.PublishRunCompleted(ctx, event); err != nil {
		p.log.Warn().Err(err).Msg("pipeline: failed to publish run event")
	}
}
