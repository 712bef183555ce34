package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/models"
)

func record(id int64, group *int64, mediaPath string, links ...string) models.RawRecord {
	text := "ምርት"
	date := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	rec := models.RawRecord{
		ChannelTitle:    "Doctors ET",
		ChannelUsername: "doctorset",
		ChannelID:       100,
		MessageID:       id,
		Text:            &text,
		Date:            &date,
		GroupID:         group,
		Links:           links,
	}
	if mediaPath != "" {
		rec.MediaPath = &mediaPath
	}
	return rec
}

func groupID(v int64) *int64 { return &v }

func TestAggregate_GroupMediaPaths(t *testing.T) {
	a := NewAggregator(logger.Nop())

	// three physical messages of one logical post
	batch := []models.RawRecord{
		record(10, groupID(7), "a.jpg"),
		record(11, groupID(7), models.NoMedia),
		record(12, groupID(7), "b.jpg"),
	}

	out := a.Aggregate(batch)
	require.Len(t, out, 1)

	rec := out[0]
	assert.Equal(t, int64(7), rec.GroupID)
	assert.Equal(t, []int64{10, 11, 12}, rec.MessageIDs)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, rec.MediaPaths)
}

func TestAggregate_FirstRecordWinsScalars(t *testing.T) {
	a := NewAggregator(logger.Nop())

	first := record(1, groupID(5), "")
	text := "የመጀመሪያ መልእክት"
	first.Text = &text

	second := record(2, groupID(5), "")
	other := "ሁለተኛ"
	second.Text = &other

	out := a.Aggregate([]models.RawRecord{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, "የመጀመሪያ መልእክት", out[0].Text)
	assert.Equal(t, int64(1), out[0].MessageID)
}

func TestAggregate_SingletonGroups(t *testing.T) {
	a := NewAggregator(logger.Nop())

	// no group id present: every record is its own group
	batch := []models.RawRecord{
		record(1, nil, ""),
		record(2, nil, ""),
		record(3, nil, ""),
	}

	out := a.Aggregate(batch)
	require.Len(t, out, 3)
	for i, rec := range out {
		assert.Equal(t, batch[i].MessageID, rec.GroupID)
		assert.Equal(t, []int64{batch[i].MessageID}, rec.MessageIDs)
	}
}

func TestAggregate_Totality(t *testing.T) {
	a := NewAggregator(logger.Nop())

	batch := []models.RawRecord{
		record(1, groupID(7), ""),
		record(2, nil, ""),
		record(3, groupID(7), ""),
		record(4, groupID(9), ""),
		record(5, nil, ""),
	}

	out := a.Aggregate(batch)

	// every input record lands in exactly one group
	total := 0
	for _, rec := range out {
		total += len(rec.MessageIDs)
	}
	assert.Equal(t, len(batch), total)

	// one output per distinct group id, in first-seen order
	require.Len(t, out, 4)
	assert.Equal(t, int64(7), out[0].GroupID)
	assert.Equal(t, int64(2), out[1].GroupID)
	assert.Equal(t, int64(9), out[2].GroupID)
	assert.Equal(t, int64(5), out[3].GroupID)
}

func TestAggregate_FlattensLinks(t *testing.T) {
	a := NewAggregator(logger.Nop())

	batch := []models.RawRecord{
		record(1, groupID(3), "", "http://a.com"),
		record(2, groupID(3), ""),
		record(3, groupID(3), "", "http://b.com", "http://c.com"),
	}

	out := a.Aggregate(batch)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"http://a.com", "http://b.com", "http://c.com"}, out[0].Links)
}

func TestAggregate_EmptyBatch(t *testing.T) {
	a := NewAggregator(logger.Nop())
	assert.Empty(t, a.Aggregate(nil))
}
