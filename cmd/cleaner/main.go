package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ethiodata/telecorpus/internal/aggregate"
	"github.com/ethiodata/telecorpus/internal/config"
	"github.com/ethiodata/telecorpus/internal/fileio"
	"github.com/ethiodata/telecorpus/internal/logger"
	"github.com/ethiodata/telecorpus/internal/media"
	"github.com/ethiodata/telecorpus/internal/nats"
	"github.com/ethiodata/telecorpus/internal/pipeline"
	"github.com/ethiodata/telecorpus/internal/publisher"
	"github.com/ethiodata/telecorpus/internal/sanitize"
	"github.com/ethiodata/telecorpus/internal/storage"
	"github.com/ethiodata/telecorpus/internal/validate"
)

func main() {
	sourceKind := flag.String("source", "mongo", "raw batch source: mongo or csv")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log.Info().Msg("starting cleaning pipeline")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	// mongo serves as raw source and as one of the cleaned sinks
	mongoStore, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer mongoStore.Close(ctx)
	log.Info().Msg("connected to mongo")

	var source pipeline.BatchSource
	switch *sourceKind {
	case "csv":
		source = storage.NewFileSource(cfg.CSVFile, fileio.FormatCSV, log)
	case "mongo":
		source = mongoStore.RawSource(cfg.RawCollection)
	default:
		log.Fatal().Str("source", *sourceKind).Msg("unknown source kind")
	}

	// one sink failing must not block the other, so a sink that cannot
	// even connect is skipped with an error instead of aborting the run
	sinks := []pipeline.BatchSink{mongoStore.CleanedSink(cfg.CleanCollection)}

	pgStore, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL, cfg.CleanTable, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to postgres, skipping sink")
	} else {
		defer pgStore.Close()
		sinks = append(sinks, pgStore)
		log.Info().Msg("connected to postgres")
	}

	// run events are optional
	var events pipeline.RunPublisher
	if natsClient, err := nats.New(ctx, cfg.NatsURL); err != nil {
		log.Warn().Err(err).Msg("failed to connect to nats, run events disabled")
	} else {
		defer natsClient.Close()
		events = publisher.NewJetStreamPublisher(natsClient)
		log.Info().Msg("connected to nats")
	}

	mediaStore, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open media store")
	}

	pipe := pipeline.New(
		source,
		sinks,
		events,
		sanitize.NewSanitizer(mediaStore, log),
		aggregate.NewAggregator(log),
		validate.NewValidator(log),
		log,
	)

	result, err := pipe.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline failed")
	}

	log.Info().
		Str("run_id", result.RunID.String()).
		Str("stage", string(result.Stage)).
		Int("loaded", result.Loaded).
		Int("duplicates", result.Duplicates).
		Int("groups", result.Groups).
		Int("store_errors", result.StoreErrors).
		Msg("pipeline completed")
}
