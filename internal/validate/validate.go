// Package validate runs post-hoc quality checks over a cleaned batch.
package validate

import (
	"strings"

	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/models"
)

// minTextLength is the threshold below which a message counts as anomalous.
const minTextLength = 2

// maxExamples caps how many offending message ids a diagnostic carries.
const maxExamples = 5

// Diagnostics summarizes anomalous records found in a batch.
// Purely observational: validation never filters or halts the pipeline.
type Diagnostics struct {
	ShortText       Finding
	UnknownChannels Finding
}

// Finding is one flagged condition: a count plus example message ids.
type Finding struct {
	Count    int
	Examples []int64
}

func (f *Finding) add(messageID int64) {
	f.Count++
	if len(f.Examples) < maxExamples {
		f.Examples = append(f.Examples, messageID)
	}
}

// Validator checks cleaned batches and reports diagnostics.
type Validator struct {
	log *logger.Logger
}

// NewValidator creates a validator.
func NewValidator(log *logger.Logger) *Validator {
	return &Validator{log: log}
}

// Check inspects the batch read-only and returns diagnostics for
// anomalous records: text shorter than the threshold and channels
// left at the unknown sentinel.
func (v *Validator) Check(batch []models.CleanedRecord) Diagnostics {
	var diag Diagnostics

	for _, rec := range batch {
		if len([]rune(rec.Text)) < minTextLength {
			diag.ShortText.add(rec.MessageID)
		}
		// usernames are lowercased during standardization, so the
		// sentinel arrives here folded
		if strings.EqualFold(rec.ChannelUsername, models.UnknownChannel) {
			diag.UnknownChannels.add(rec.MessageID)
		}
	}

	if diag.ShortText.Count > 0 {
		v.log.Warn().
			Int("count", diag.ShortText.Count).
			Ints64("examples", diag.ShortText.Examples).
			Msg("validate: very short messages")
	}
	if diag.UnknownChannels.Count > 0 {
		v.log.Warn().
			Int("count", diag.UnknownChannels.Count).
			Ints64("examples", diag.UnknownChannels.Examples).
			Msg("validate: messages from unknown channels")
	}

	return diag
}
