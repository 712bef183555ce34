package scraper

import (
	"context"
	"sync"

	"github.com/gotd/td/tg"

	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/media"
	"github.com/ethiodata/telecorpus/internal/models"
)

// ChannelClient is the telegram surface the service scrapes through.
type ChannelClient interface {
	ResolveChannel(ctx context.Context, username string) (*Channel, error)
	GetMessages(ctx context.Context, channel *Channel, offsetID int, limit int) ([]Message, error)
	DownloadPhoto(ctx context.Context, photo *tg.Photo, path string) error
}

// Service scrapes a set of channels into one raw record batch.
// One fetch task runs per channel; all tasks append to a shared batch
// guarded by single-writer access.
type Service struct {
	client ChannelClient
	media  *media.Store
	limit  int
	log    *logger.Logger
}

// NewService creates a scrape service. mediaStore may be nil to skip
// photo downloads. limit caps messages per channel; 0 means no cap.
func NewService(client ChannelClient, mediaStore *media.Store, limit int, log *logger.Logger) *Service {
	return &Service{
		client: client,
		media:  mediaStore,
		limit:  limit,
		log:    log,
	}
}

// batchWriter collects records from concurrent channel tasks.
// Only one task appends at a time.
type batchWriter struct {
	mu      sync.Mutex
	records []models.RawRecord
}

func (w *batchWriter) append(recs ...models.RawRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = append(w.records, recs...)
}

// ScrapeAll fetches every channel concurrently and returns the combined
// batch. A failing channel is logged and skipped; the others proceed.
func (s *Service) ScrapeAll(ctx context.Context, channels []string) []models.RawRecord {
	writer := &batchWriter{}

	var wg sync.WaitGroup
	for _, username := range channels {
		wg.Add(1)
		go func(username string) {
			defer wg.Done()
			if err := s.scrapeChannel(ctx, username, writer); err != nil {
				s.log.Error().Err(err).Str("channel", username).Msg("scraper: channel failed")
			}
		}(username)
	}
	wg.Wait()

	s.log.Info().
		Int("channels", len(channels)).
		Int("records", len(writer.records)).
		Msg("scraper: scraping completed")

	return writer.records
}

// scrapeChannel walks one channel's history from newest to oldest.
func (s *Service) scrapeChannel(ctx context.Context, username string, writer *batchWriter) error {
	channel, err := s.client.ResolveChannel(ctx, username)
	if err != nil {
		return err
	}

	s.log.Info().Str("channel", username).Str("title", channel.Title).Msg("scraper: scraping channel")

	fetched := 0
	offsetID := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		messages, err := s.client.GetMessages(ctx, channel, offsetID, 100)
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			break
		}

		for _, msg := range messages {
			writer.append(s.toRecord(ctx, channel, msg))
		}

		fetched += len(messages)
		offsetID = messages[len(messages)-1].ID

		if s.limit > 0 && fetched >= s.limit {
			break
		}
	}

	s.log.Info().Str("channel", username).Int("fetched", fetched).Msg("scraper: finished channel")
	return nil
}

// toRecord converts a fetched message, downloading its photo when present.
func (s *Service) toRecord(ctx context.Context, channel *Channel, msg Message) models.RawRecord {
	rec := models.RawRecord{
		ChannelTitle:    channel.Title,
		ChannelUsername: channel.Username,
		ChannelID:       channel.ID,
		MessageID:       int64(msg.ID),
	}

	if msg.Text != "" {
		text := msg.Text
		rec.Text = &text
	}

	date := msg.Date
	rec.Date = &date

	if msg.GroupedID != 0 {
		gid := msg.GroupedID
		rec.GroupID = &gid
	}

	if msg.Photo != nil && s.media != nil {
		path := s.media.Path(channel.Username, int64(msg.ID))
		if err := s.client.DownloadPhoto(ctx, msg.Photo, path); err != nil {
			s.log.Warn().Err(err).Int("message_id", msg.ID).Msg("scraper: photo download failed")
		} else {
			rec.MediaPath = &path
		}
	}

	return rec
}
