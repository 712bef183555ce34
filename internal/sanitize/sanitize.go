// Package sanitize repairs raw record batches: duplicate removal with
// orphaned-artifact cleanup, and missing-value defaults.
package sanitize

import (
	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/models"
)

// ArtifactRemover deletes the media artifact belonging to a record.
type ArtifactRemover interface {
	Remove(channelUsername string, messageID int64) error
}

// Sanitizer performs per-record repair over one batch.
type Sanitizer struct {
	artifacts ArtifactRemover
	log       *logger.Logger
}

// NewSanitizer creates a sanitizer. artifacts may be nil when no media
// directory is configured; duplicate removal then skips cleanup.
func NewSanitizer(artifacts ArtifactRemover, log *logger.Logger) *Sanitizer {
	return &Sanitizer{
		artifacts: artifacts,
		log:       log,
	}
}

// RemoveDuplicates keeps the first occurrence of every message id in
// batch order and classifies later occurrences as duplicates. For each
// duplicate it attempts to delete the associated media artifact; a
// failed deletion is logged and never aborts the batch.
func (s *Sanitizer) RemoveDuplicates(batch []models.RawRecord) (clean, removed []models.RawRecord) {
	seen := make(map[int64]bool, len(batch))

	for _, rec := range batch {
		if seen[rec.MessageID] {
			removed = append(removed, rec)
			s.removeArtifact(rec)
			continue
		}
		seen[rec.MessageID] = true
		clean = append(clean, rec)
	}

	s.log.Info().
		Int("kept", len(clean)).
		Int("duplicates", len(removed)).
		Msg("sanitize: removed duplicate messages")

	return clean, removed
}

// removeArtifact attempts the best-effort deletion of a duplicate's media file.
func (s *Sanitizer) removeArtifact(rec models.RawRecord) {
	if s.artifacts == nil {
		return
	}
	if err := s.artifacts.Remove(rec.ChannelUsername, rec.MessageID); err != nil {
		s.log.Error().
			Err(err).
			Str("channel", rec.ChannelUsername).
			Int64("message_id", rec.MessageID).
			Msg("sanitize: failed to remove duplicate media artifact")
	}
}

// FillMissing substitutes sentinels for absent fields and drops records
// whose message id is irrecoverably missing. Records already carrying a
// sentinel are left alone, so a second run never re-defaults.
//
// The missing-date policy is the epoch sentinel (1970-01-01T00:00:00Z):
// unlike a current-time fallback it keeps the pipeline idempotent.
func (s *Sanitizer) FillMissing(batch []models.RawRecord) []models.RawRecord {
	out := make([]models.RawRecord, 0, len(batch))
	dropped := 0

	for _, rec := range batch {
		if rec.MessageID == 0 {
			dropped++
			continue
		}

		if rec.ChannelUsername == "" {
			rec.ChannelUsername = models.UnknownChannel
		}
		if rec.Text == nil || *rec.Text == "" {
			text := models.NoMessage
			rec.Text = &text
		}
		if rec.Date == nil {
			epoch := models.EpochDate
			rec.Date = &epoch
		}
		if rec.MediaPath == nil || *rec.MediaPath == "" {
			noMedia := models.NoMedia
			rec.MediaPath = &noMedia
		}

		out = append(out, rec)
	}

	if dropped > 0 {
		s.log.Warn().Int("dropped", dropped).Msg("sanitize: dropped records without message id")
	}
	s.log.Info().Msg("sanitize: handled missing values")

	return out
}
