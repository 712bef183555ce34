package fileio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethiodata/telecorpus/internal/models"
)

// jsonCodec reads and writes batches as JSON lines, one record per line.
type jsonCodec struct{}

func (jsonCodec) DecodeRaw(r io.Reader) ([]models.RawRecord, error) {
	dec := json.NewDecoder(r)

	var batch []models.RawRecord
	for {
		var rec models.RawRecord
		if err := dec.Decode(&rec); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decode json record: %w", err)
		}
		batch = append(batch, rec)
	}
	return batch, nil
}

func (jsonCodec) EncodeRaw(w io.Writer, batch []models.RawRecord) error {
	enc := json.NewEncoder(w)
	for _, rec := range batch {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode json record: %w", err)
		}
	}
	return nil
}

func (jsonCodec) EncodeCleaned(w io.Writer, batch []models.CleanedRecord) error {
	enc := json.NewEncoder(w)
	for _, rec := range batch {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode json record: %w", err)
		}
	}
	return nil
}
