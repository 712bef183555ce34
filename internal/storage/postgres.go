package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/models"
)

// cleanedRow is the relational shape of a cleaned record. List-valued
// fields are flattened to comma-joined text columns.
type cleanedRow struct {
	GroupID         int64     `gorm:"column:group_id;primaryKey"`
	MessageID       int64     `gorm:"column:message_id"`
	MessageIDs      string    `gorm:"column:message_ids"`
	ChannelTitle    string    `gorm:"column:channel_title"`
	ChannelUsername string    `gorm:"column:channel_username"`
	ChannelID       int64     `gorm:"column:channel_id"`
	Message         string    `gorm:"column:message"`
	Date            time.Time `gorm:"column:date"`
	EmojiUsed       string    `gorm:"column:emoji_used"`
	YouTubeLinks    string    `gorm:"column:youtube_links"`
	Links           string    `gorm:"column:links"`
	MediaPaths      string    `gorm:"column:media_paths"`
}

// cleanedColumns matches cleanedRow, in CopyFrom order.
var cleanedColumns = []string{
	"group_id", "message_id", "message_ids",
	"channel_title", "channel_username", "channel_id",
	"message", "date", "emoji_used", "youtube_links", "links", "media_paths",
}

// PostgresStore writes cleaned batches to a PostgreSQL table.
// gorm handles the schema, pgx does the bulk load.
type PostgresStore struct {
	pool  *pgxpool.Pool
	gorm  *gorm.DB
	table string
	log   *logger.Logger
}

// NewPostgresStore connects a pgx pool and a gorm instance over the same URL.
func NewPostgresStore(ctx context.Context, databaseURL, table string, log *logger.Logger) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return &PostgresStore{
		pool:  pool,
		gorm:  gormDB,
		table: table,
		log:   log,
	}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Name identifies the sink in logs.
func (s *PostgresStore) Name() string {
	return "postgres:" + s.table
}

// Store replaces the table with the cleaned batch: drop, migrate, bulk copy.
func (s *PostgresStore) Store(ctx context.Context, batch []models.CleanedRecord) error {
	migrator := s.gorm.WithContext(ctx).Table(s.table)

	if err := migrator.Migrator().DropTable(s.table); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if err := migrator.AutoMigrate(&cleanedRow{}); err != nil {
		return fmt.Errorf("migrate table: %w", err)
	}
	if len(batch) == 0 {
		return nil
	}

	rows := make([]cleanedRow, len(batch))
	for i, rec := range batch {
		rows[i] = toRow(rec)
	}

	copied, err := s.pool.CopyFrom(
		ctx,
		pgx.Identifier{s.table},
		cleanedColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{
				r.GroupID, r.MessageID, r.MessageIDs,
				r.ChannelTitle, r.ChannelUsername, r.ChannelID,
				r.Message, r.Date, r.EmojiUsed, r.YouTubeLinks, r.Links, r.MediaPaths,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy cleaned records: %w", err)
	}

	s.log.Info().
		Int64("count", copied).
		Str("table", s.table).
		Msg("storage: stored cleaned batch in postgres")

	return nil
}

// toRow flattens a cleaned record for the relational store.
func toRow(rec models.CleanedRecord) cleanedRow {
	ids := make([]string, len(rec.MessageIDs))
	for i, id := range rec.MessageIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}

	return cleanedRow{
		GroupID:         rec.GroupID,
		MessageID:       rec.MessageID,
		MessageIDs:      strings.Join(ids, ","),
		ChannelTitle:    rec.ChannelTitle,
		ChannelUsername: rec.ChannelUsername,
		ChannelID:       rec.ChannelID,
		Message:         rec.Text,
		Date:            rec.Date,
		EmojiUsed:       rec.EmojiUsed,
		YouTubeLinks:    rec.YouTubeLinks,
		Links:           strings.Join(rec.Links, ","),
		MediaPaths:      strings.Join(rec.MediaPaths, ","),
	}
}
