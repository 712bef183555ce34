// Package fileio reads and writes record batches in the supported file
// formats. Formats are declared tags mapped to codecs once, at the
// boundary, instead of re-inspecting file extensions per call.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ethiodata/telecorpus/internal/models"
)

// Format is a declared file format tag.
type Format string

// Supported formats.
const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatCoNLL Format = "conll"
)

// RawCodec encodes and decodes raw record batches.
type RawCodec interface {
	DecodeRaw(r io.Reader) ([]models.RawRecord, error)
	EncodeRaw(w io.Writer, batch []models.RawRecord) error
}

// CleanedEncoder writes cleaned record batches.
type CleanedEncoder interface {
	EncodeCleaned(w io.Writer, batch []models.CleanedRecord) error
}

// rawCodecs maps format tags to raw-batch codecs.
var rawCodecs = map[Format]RawCodec{
	FormatCSV:  csvCodec{},
	FormatJSON: jsonCodec{},
}

// cleanedEncoders maps format tags to cleaned-batch encoders.
var cleanedEncoders = map[Format]CleanedEncoder{
	FormatJSON: jsonCodec{},
}

// LoadRaw reads a raw record batch from path using the codec for format.
func LoadRaw(path string, format Format) ([]models.RawRecord, error) {
	codec, ok := rawCodecs[format]
	if !ok {
		return nil, fmt.Errorf("unsupported raw format: %s", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	batch, err := codec.DecodeRaw(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return batch, nil
}

// SaveRaw writes a raw record batch to path using the codec for format.
func SaveRaw(path string, format Format, batch []models.RawRecord) error {
	codec, ok := rawCodecs[format]
	if !ok {
		return fmt.Errorf("unsupported raw format: %s", format)
	}
	return writeFile(path, func(w io.Writer) error {
		return codec.EncodeRaw(w, batch)
	})
}

// SaveCleaned writes a cleaned record batch to path using the encoder
// for format.
func SaveCleaned(path string, format Format, batch []models.CleanedRecord) error {
	enc, ok := cleanedEncoders[format]
	if !ok {
		return fmt.Errorf("unsupported cleaned format: %s", format)
	}
	return writeFile(path, func(w io.Writer) error {
		return enc.EncodeCleaned(w, batch)
	})
}

// writeFile creates parent directories and streams the encode into path.
func writeFile(path string, encode func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := encode(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
