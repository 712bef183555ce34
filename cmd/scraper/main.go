package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ethiodata/telecorpus/internal/config"
	"github.com/ethiodata/telecorpus/internal/fileio"
	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/media"
	"github.com/ethiodata/telecorpus/internal/scraper"
	"github.com/ethiodata/telecorpus/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log.Info().Msg("starting scraper")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	channels, err := config.LoadChannels(cfg.ChannelsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load channel list")
	}
	if len(channels.Channels) == 0 {
		log.Fatal().Str("path", cfg.ChannelsFile).Msg("channel list is empty")
	}

	mediaStore, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open media store")
	}

	proto, err := scraper.NewProtoClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create telegram client")
	}
	defer proto.Stop()

	client := scraper.NewClient(proto, cfg.ScrapeRPS, log)
	svc := scraper.NewService(client, mediaStore, 0, log)

	batch := svc.ScrapeAll(ctx, channels.Channels)
	if len(batch) == 0 {
		log.Warn().Msg("no messages scraped")
		return
	}

	if err := fileio.SaveRaw(cfg.CSVFile, fileio.FormatCSV, batch); err != nil {
		log.Error().Err(err).Str("path", cfg.CSVFile).Msg("failed to save csv")
	} else {
		log.Info().Int("count", len(batch)).Str("path", cfg.CSVFile).Msg("saved raw batch to csv")
	}

	// mirror the raw batch into mongo for the pipeline's document source
	mongoStore, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to mongo, skipping mirror")
		return
	}
	defer mongoStore.Close(ctx)

	if err := mongoStore.InsertRaw(ctx, cfg.RawCollection, batch); err != nil {
		log.Error().Err(err).Msg("failed to mirror raw batch into mongo")
		return
	}
	log.Info().Int("count", len(batch)).Msg("mirrored raw batch into mongo")
}
