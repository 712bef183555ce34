package fileio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ethiodata/telecorpus/internal/models"
)

// csvHeader is the exact column order the scraper produces.
var csvHeader = []string{
	"channel_title", "channel_username", "channel_id",
	"message_id", "message", "date", "media_path",
}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// csvCodec reads and writes the scraper's tabular format.
type csvCodec struct{}

func (csvCodec) DecodeRaw(r io.Reader) ([]models.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// skip the header row when present
	if rows[0][0] == csvHeader[0] {
		rows = rows[1:]
	}

	batch := make([]models.RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := models.RawRecord{
			ChannelTitle:    row[0],
			ChannelUsername: row[1],
		}

		// malformed numeric fields coerce to zero, never fail the batch
		rec.ChannelID, _ = strconv.ParseInt(row[2], 10, 64)
		rec.MessageID, _ = strconv.ParseInt(row[3], 10, 64)

		if row[4] != "" {
			text := row[4]
			rec.Text = &text
		}
		if t, ok := parseDate(row[5]); ok {
			rec.Date = &t
		}
		if row[6] != "" {
			path := row[6]
			rec.MediaPath = &path
		}

		batch = append(batch, rec)
	}
	return batch, nil
}

func (csvCodec) EncodeRaw(w io.Writer, batch []models.RawRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range batch {
		row := []string{
			rec.ChannelTitle,
			rec.ChannelUsername,
			strconv.FormatInt(rec.ChannelID, 10),
			strconv.FormatInt(rec.MessageID, 10),
			rec.TextValue(),
			"",
			"",
		}
		if rec.Date != nil {
			row[5] = rec.Date.Format(time.RFC3339)
		}
		if rec.MediaPath != nil {
			row[6] = *rec.MediaPath
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// parseDate tries the known layouts; a malformed date reports ok=false
// so the sanitizer can substitute the sentinel.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
