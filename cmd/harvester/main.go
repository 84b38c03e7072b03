package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tabletoplab/bgg-harvester/internal/config"
	"github.com/tabletoplab/bgg-harvester/internal/dataset"
	"github.com/tabletoplab/bgg-harvester/internal/processing"
	"github.com/tabletoplab/bgg-harvester/internal/retriever"
	"github.com/tabletoplab/bgg-harvester/internal/storage"
	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
	"github.com/tabletoplab/bgg-harvester/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.SetupLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	logger := logging.GetLogger("harvester")
	logger.Info().Strs("games", cfg.Games).Int("max_comments", cfg.MaxComments).Msg("Starting harvest")

	store, err := storage.NewFilesystemStore(cfg.OutputDir, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create snapshot store")
	}

	client := bgg.NewClient(cfg.API)
	ret := retriever.New(client, store)
	preprocessor := processing.NewPreprocessor(nil)

	ctx := context.Background()

	var ds *dataset.Dataset
	retrieve := logging.Instrument(logger, "retrieve_comments", func(ctx context.Context) error {
		ds = ret.RetrieveComments(ctx, cfg.Games, cfg.MaxComments)
		return nil
	})
	if err := retrieve(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Retrieval failed")
	}

	var preprocessed map[string][]processing.PreprocessedComment
	preprocess := logging.Instrument(logger, "preprocess_dataset", func(context.Context) error {
		preprocessed = preprocessor.PreprocessDataset(ds)
		return nil
	})
	if err := preprocess(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Preprocessing failed")
	}

	total := 0
	for _, comments := range preprocessed {
		total += len(comments)
	}
	logger.Info().
		Int("games", ds.Len()).
		Int("comments", total).
		Str("output_dir", cfg.OutputDir).
		Msg("Harvest complete")
}
