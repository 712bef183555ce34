// Package models defines the record types flowing through the cleaning pipeline.
package models

import (
	"fmt"
	"time"
)

// Sentinel values substituted for absent fields.
// Downstream consumers branch on these exact strings.
const (
	UnknownChannel = "Unknown"
	NoMessage      = "No Message"
	NoMedia        = "No Media"
	NoEmoji        = "No emoji"
	NoYouTubeLink  = "No YouTube link"
)

// EpochDate is the sentinel substituted for a missing message date.
var EpochDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// RawRecord is one scraped telegram message as originally captured.
// Nullable fields are pointers; the record is immutable once produced
// by the scraper and is consumed only by the sanitizer.
type RawRecord struct {
	ChannelTitle    string     `json:"channel_title" bson:"channel_title"`
	ChannelUsername string     `json:"channel_username" bson:"channel_username"`
	ChannelID       int64      `json:"channel_id" bson:"channel_id"`
	MessageID       int64      `json:"message_id" bson:"message_id"`
	Text            *string    `json:"message,omitempty" bson:"message,omitempty"`
	Date            *time.Time `json:"date,omitempty" bson:"date,omitempty"`
	MediaPath       *string    `json:"media_path,omitempty" bson:"media_path,omitempty"`

	// GroupID ties the physical messages of one multi-part post together.
	// nil means the message is its own group (keyed by MessageID).
	GroupID *int64 `json:"group_id,omitempty" bson:"group_id,omitempty"`

	// Links extracted from Text before deduplication. nil when none found.
	Links []string `json:"links,omitempty" bson:"links,omitempty"`
}

// TextValue returns the message text or the empty string when absent.
func (r *RawRecord) TextValue() string {
	if r.Text == nil {
		return ""
	}
	return *r.Text
}

// EffectiveGroupID returns GroupID, falling back to MessageID so every
// ungrouped record forms a singleton group.
func (r *RawRecord) EffectiveGroupID() int64 {
	if r.GroupID != nil {
		return *r.GroupID
	}
	return r.MessageID
}

// MediaFilename returns the artifact name for the record's downloaded photo.
// The naming scheme is load-bearing: duplicate cleanup reconstructs the path
// from record fields rather than storing it.
func (r *RawRecord) MediaFilename() string {
	return fmt.Sprintf("%s_%d.jpg", r.ChannelUsername, r.MessageID)
}

// CleanedRecord is the canonical analysis-ready row, one per message group.
type CleanedRecord struct {
	GroupID         int64     `json:"group_id" bson:"group_id"`
	MessageID       int64     `json:"message_id" bson:"message_id"`
	MessageIDs      []int64   `json:"message_ids" bson:"message_ids"`
	ChannelTitle    string    `json:"channel_title" bson:"channel_title"`
	ChannelUsername string    `json:"channel_username" bson:"channel_username"`
	ChannelID       int64     `json:"channel_id" bson:"channel_id"`
	Text            string    `json:"message" bson:"message"`
	Date            time.Time `json:"date" bson:"date"`
	EmojiUsed       string    `json:"emoji_used" bson:"emoji_used"`
	YouTubeLinks    string    `json:"youtube_links" bson:"youtube_links"`
	Links           []string  `json:"links,omitempty" bson:"links,omitempty"`
	MediaPaths      []string  `json:"media_paths,omitempty" bson:"media_paths,omitempty"`
}
