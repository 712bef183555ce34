// Package scraper fetches channel histories from Telegram and turns
// them into raw record batches for the cleaning pipeline.
package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/celestix/gotgproto"
	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"

	"github.com/ethiodata/telecorpus/internal/logger"
)

// Channel holds the resolved identity of a telegram channel.
type Channel struct {
	ID         int64
	AccessHash int64
	Username   string
	Title      string
}

// Message is one fetched channel message before conversion to a record.
type Message struct {
	ID        int
	Text      string
	Date      time.Time
	GroupedID int64 // non-zero when part of a multi-part post
	Photo     *tg.Photo
}

// Client wraps a gotgproto client with the operations the scraper needs.
type Client struct {
	proto *gotgproto.Client
	pace  *throttle
	log   *logger.Logger
}

// NewClient creates a telegram client wrapper.
func NewClient(proto *gotgproto.Client, rps float64, log *logger.Logger) *Client {
	return &Client{
		proto: proto,
		pace:  newThrottle(rps, 1),
		log:   log,
	}
}

// API returns the raw tg.Client for direct api calls.
func (c *Client) API() *tg.Client {
	return c.proto.API()
}

// ResolveChannel resolves a channel username, with or without the @ prefix.
func (c *Client) ResolveChannel(ctx context.Context, username string) (*Channel, error) {
	username = strings.TrimPrefix(username, "@")

	if err := c.pace.acquire(ctx); err != nil {
		return nil, err
	}

	resolved, err := c.API().ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		if wait := floodWait(err); wait > 0 {
			c.pace.backoff(wait)
		}
		return nil, fmt.Errorf("resolve username %s: %w", username, err)
	}

	if len(resolved.Chats) == 0 {
		return nil, fmt.Errorf("channel not found: %s", username)
	}
	ch, ok := resolved.Chats[0].(*tg.Channel)
	if !ok {
		return nil, fmt.Errorf("not a channel: %s", username)
	}

	return &Channel{
		ID:         ch.ID,
		AccessHash: ch.AccessHash,
		Username:   username,
		Title:      ch.Title,
	}, nil
}

// GetMessages fetches one page of channel history.
// offsetID 0 starts from the newest messages.
func (c *Client) GetMessages(ctx context.Context, channel *Channel, offsetID int, limit int) ([]Message, error) {
	if limit > 100 {
		limit = 100 // telegram api limit
	}

	if err := c.pace.acquire(ctx); err != nil {
		return nil, err
	}

	history, err := c.API().MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer: &tg.InputPeerChannel{
			ChannelID:  channel.ID,
			AccessHash: channel.AccessHash,
		},
		OffsetID: offsetID,
		Limit:    limit,
	})
	if err != nil {
		if wait := floodWait(err); wait > 0 {
			c.pace.backoff(wait)
		}
		return nil, fmt.Errorf("get history: %w", err)
	}

	return extractMessages(history), nil
}

// DownloadPhoto saves a message photo to path.
func (c *Client) DownloadPhoto(ctx context.Context, photo *tg.Photo, path string) error {
	if err := c.pace.acquire(ctx); err != nil {
		return err
	}

	loc := &tg.InputPhotoFileLocation{
		ID:            photo.ID,
		AccessHash:    photo.AccessHash,
		FileReference: photo.FileReference,
		ThumbSize:     largestSizeType(photo),
	}

	if _, err := downloader.NewDownloader().Download(c.API(), loc).ToPath(ctx, path); err != nil {
		return fmt.Errorf("download photo: %w", err)
	}
	return nil
}

// largestSizeType returns the type letter of the biggest photo size.
func largestSizeType(photo *tg.Photo) string {
	sizeType := ""
	for _, s := range photo.Sizes {
		switch size := s.(type) {
		case *tg.PhotoSize:
			sizeType = size.Type
		case *tg.PhotoSizeProgressive:
			sizeType = size.Type
		}
	}
	return sizeType
}

// extractMessages converts a history response to scraper messages.
func extractMessages(messagesClass tg.MessagesMessagesClass) []Message {
	var raw []tg.MessageClass

	switch h := messagesClass.(type) {
	case *tg.MessagesChannelMessages:
		raw = h.Messages
	case *tg.MessagesMessages:
		raw = h.Messages
	}

	var messages []Message
	for _, msg := range raw {
		m, ok := msg.(*tg.Message)
		if !ok {
			continue
		}

		out := Message{
			ID:        m.ID,
			Text:      m.Message,
			Date:      time.Unix(int64(m.Date), 0).UTC(),
			GroupedID: m.GroupedID,
		}

		if media, ok := m.Media.(*tg.MessageMediaPhoto); ok {
			if photo, ok := media.Photo.(*tg.Photo); ok {
				out.Photo = photo
			}
		}

		messages = append(messages, out)
	}
	return messages
}

// floodWait parses the wait duration out of a FLOOD_WAIT error,
// returning 0 for other errors.
func floodWait(err error) time.Duration {
	if err == nil {
		return 0
	}

	parts := strings.Split(err.Error(), "FLOOD_WAIT_")
	if len(parts) < 2 {
		return 0
	}

	var seconds int
	_, _ = fmt.Sscanf(strings.TrimSpace(parts[1]), "%d", &seconds)
	return time.Duration(seconds) * time.Second
}
