package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/ethiodata/telecorpus/internal/fileio"
	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/models"
)

// FileSource loads a raw batch from a local file. A missing file is not
// fatal: the source logs it and yields an empty batch so the pipeline
// terminates as a no-op.
type FileSource struct {
	path   string
	format fileio.Format
	log    *logger.Logger
}

// NewFileSource creates a file-backed batch source.
func NewFileSource(path string, format fileio.Format, log *logger.Logger) *FileSource {
	return &FileSource{path: path, format: format, log: log}
}

// Load reads the complete batch from the file.
func (f *FileSource) Load(_ context.Context) ([]models.RawRecord, error) {
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		f.log.Error().Str("path", f.path).Msg("storage: source file not found")
		return nil, nil
	}

	batch, err := fileio.LoadRaw(f.path, f.format)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}

	f.log.Info().Int("count", len(batch)).Str("path", f.path).Msg("storage: loaded raw batch from file")
	return batch, nil
}

// FileSink writes the cleaned batch to a local file, replacing it.
type FileSink struct {
	path   string
	format fileio.Format
	log    *logger.Logger
}

// NewFileSink creates a file-backed batch sink.
func NewFileSink(path string, format fileio.Format, log *logger.Logger) *FileSink {
	return &FileSink{path: path, format: format, log: log}
}

// Name identifies the sink in logs.
func (f *FileSink) Name() string {
	return "file:" + f.path
}

// Store writes the full batch, overwriting any previous file.
func (f *FileSink) Store(_ context.Context, batch []models.CleanedRecord) error {
	if err := fileio.SaveCleaned(f.path, f.format, batch); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}

	f.log.Info().Int("count", len(batch)).Str("path", f.path).Msg("storage: stored cleaned batch in file")
	return nil
}
