// Package aggregate consolidates the physical messages of one multi-part
// post into a single canonical record.
package aggregate

import (
	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/models"
)

// groupAccumulator holds per-group state while a batch is reduced.
// Discarded once the cleaned record is emitted.
type groupAccumulator struct {
	first      models.RawRecord
	messageIDs []int64
	mediaPaths []string
	links      []string
}

// Aggregator reduces a batch keyed by group id.
type Aggregator struct {
	log *logger.Logger
}

// NewAggregator creates a group aggregator.
func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{log: log}
}

// Aggregate reduces the batch to one record per distinct group id.
// A record without a group id forms its own singleton group keyed by
// message id, so the reduction is total. Output order and in-group
// ordering follow first-seen order.
//
// Per-field reducers: message ids collect in encounter order; text,
// channel fields and date come from the group's first record; media
// paths collect every non-empty, non-sentinel path; links flatten.
func (a *Aggregator) Aggregate(batch []models.RawRecord) []models.CleanedRecord {
	groups := make(map[int64]*groupAccumulator)
	var order []int64

	for _, rec := range batch {
		gid := rec.EffectiveGroupID()

		acc, ok := groups[gid]
		if !ok {
			acc = &groupAccumulator{first: rec}
			groups[gid] = acc
			order = append(order, gid)
		}

		acc.messageIDs = append(acc.messageIDs, rec.MessageID)
		if rec.MediaPath != nil && *rec.MediaPath != "" && *rec.MediaPath != models.NoMedia {
			acc.mediaPaths = append(acc.mediaPaths, *rec.MediaPath)
		}
		acc.links = append(acc.links, rec.Links...)
	}

	out := make([]models.CleanedRecord, 0, len(order))
	for _, gid := range order {
		acc := groups[gid]
		first := acc.first

		rec := models.CleanedRecord{
			GroupID:         gid,
			MessageID:       first.MessageID,
			MessageIDs:      acc.messageIDs,
			ChannelTitle:    first.ChannelTitle,
			ChannelUsername: first.ChannelUsername,
			ChannelID:       first.ChannelID,
			Text:            first.TextValue(),
			MediaPaths:      acc.mediaPaths,
			Links:           acc.links,
		}
		if first.Date != nil {
			rec.Date = *first.Date
		}

		out = append(out, rec)
	}

	a.log.Info().
		Int("records", len(batch)).
		Int("groups", len(out)).
		Msg("aggregate: grouped messages")

	return out
}
