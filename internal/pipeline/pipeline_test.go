package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethiodata/telecorpus/internal/aggregate"
	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/models"
	"github.com/ethiodata/telecorpus/internal/publisher"
	"github.com/ethiodata/telecorpus/internal/sanitize"
	"github.com/ethiodata/telecorpus/internal/validate"
)

// memSource serves a fixed batch.
type memSource struct {
	batch []models.RawRecord
	err   error
}

func (m *memSource) Load(_ context.Context) ([]models.RawRecord, error) {
	return m.batch, m.err
}

// memSink captures the stored batch.
type memSink struct {
	name   string
	stored []models.CleanedRecord
	calls  int
	err    error
}

func (m *memSink) Name() string { return m.name }

func (m *memSink) Store(_ context.Context, batch []models.CleanedRecord) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.stored = batch
	return nil
}

// memRemover counts artifact deletion attempts.
type memRemover struct {
	attempts int
}

func (m *memRemover) Remove(string, int64) error {
	m.attempts++
	return nil
}

// memPublisher captures run events.
type memPublisher struct {
	events []publisher.RunCompletedEvent
}

func (m *memPublisher) PublishRunCompleted(_ context.Context, event publisher.RunCompletedEvent) error {
	m.events = append(m.events, event)
	return nil
}

func newPipeline(source BatchSource, sinks []BatchSink, events RunPublisher, remover sanitize.ArtifactRemover) *Pipeline {
	log := logger.Nop()
	return New(
		source,
		sinks,
		events,
		sanitize.NewSanitizer(remover, log),
		aggregate.NewAggregator(log),
		validate.NewValidator(log),
		log,
	)
}

func TestRun_EndToEnd(t *testing.T) {
	text := "Hello ሀሁ😀 http://x.com"
	date := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	mediaPath := "data/photos/doctorset_42.jpg"

	batch := []models.RawRecord{
		{
			ChannelTitle:    "Doctors ET",
			ChannelUsername: "DoctorsET",
			ChannelID:       100,
			MessageID:       42,
			Text:            &text,
			Date:            &date,
		},
		{
			// true duplicate of message 42
			ChannelTitle:    "Doctors ET",
			ChannelUsername: "DoctorsET",
			ChannelID:       100,
			MessageID:       42,
			Text:            &text,
			Date:            &date,
			MediaPath:       &mediaPath,
		},
	}

	sink := &memSink{name: "mem"}
	remover := &memRemover{}
	events := &memPublisher{}

	pipe := newPipeline(&memSource{batch: batch}, []BatchSink{sink}, events, remover)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StageStored, result.Stage)
	assert.Equal(t, 2, result.Loaded)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, 1, remover.attempts)

	require.Len(t, sink.stored, 1)
	rec := sink.stored[0]
	assert.Equal(t, int64(42), rec.MessageID)
	assert.Equal(t, "ሀሁ", rec.Text)
	assert.Equal(t, "😀", rec.EmojiUsed)
	assert.Equal(t, models.NoYouTubeLink, rec.YouTubeLinks)
	assert.Equal(t, []string{"http://x.com"}, rec.Links)
	assert.Equal(t, "doctorset", rec.ChannelUsername)

	require.Len(t, events.events, 1)
	assert.Equal(t, result.RunID, events.events[0].RunID)
	assert.Equal(t, 1, events.events[0].Duplicates)
}

func TestRun_MissingChannelIsDiagnosed(t *testing.T) {
	text := "ሰላም ለሁሉ"
	date := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	// no channel username: filled with the unknown sentinel, which the
	// diagnostics must still catch after usernames are lowercased
	batch := []models.RawRecord{{
		MessageID: 7,
		Text:      &text,
		Date:      &date,
	}}

	sink := &memSink{name: "mem"}
	pipe := newPipeline(&memSource{batch: batch}, []BatchSink{sink}, nil, nil)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Diagnostics.UnknownChannels.Count)
	assert.Equal(t, []int64{7}, result.Diagnostics.UnknownChannels.Examples)

	require.Len(t, sink.stored, 1)
	assert.Equal(t, "unknown", sink.stored[0].ChannelUsername)
}

func TestRun_EmptyBatchIsTerminalNoOp(t *testing.T) {
	sink := &memSink{name: "mem"}
	pipe := newPipeline(&memSource{}, []BatchSink{sink}, nil, nil)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StageLoaded, result.Stage)
	assert.Zero(t, result.Loaded)
	assert.Zero(t, sink.calls)
}

func TestRun_SourceErrorIsFatal(t *testing.T) {
	pipe := newPipeline(&memSource{err: errors.New("boom")}, nil, nil, nil)

	_, err := pipe.Run(context.Background())
	assert.Error(t, err)
}

func TestRun_OneSinkFailingDoesNotBlockOthers(t *testing.T) {
	text := "ሰላም ለሁሉ"
	date := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	batch := []models.RawRecord{{
		ChannelUsername: "doctorset",
		MessageID:       1,
		Text:            &text,
		Date:            &date,
	}}

	failing := &memSink{name: "broken", err: errors.New("connection refused")}
	working := &memSink{name: "good"}

	pipe := newPipeline(&memSource{batch: batch}, []BatchSink{failing, working}, nil, nil)

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.StoreErrors)
	assert.Equal(t, 1, failing.calls)
	assert.Len(t, working.stored, 1)
	assert.Equal(t, StageStored, result.Stage)
}

func TestRun_MessageIDsUniqueAcrossOutput(t *testing.T) {
	date := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	var batch []models.RawRecord
	for _, id := range []int64{1, 2, 1, 3, 2, 1} {
		text := "ሰላም ለሁሉ"
		batch = append(batch, models.RawRecord{
			ChannelUsername: "doctorset",
			MessageID:       id,
			Text:            &text,
			Date:            &date,
		})
	}

	sink := &memSink{name: "mem"}
	pipe := newPipeline(&memSource{batch: batch}, []BatchSink{sink}, nil, &memRemover{})

	result, err := pipe.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Duplicates)

	seen := map[int64]bool{}
	for _, rec := range sink.stored {
		assert.False(t, seen[rec.MessageID], "duplicate message id %d in output", rec.MessageID)
		seen[rec.MessageID] = true
	}
	assert.Len(t, seen, 3)
}
