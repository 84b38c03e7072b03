package retriever

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tabletoplab/bgg-harvester/internal/dataset"
	"github.com/tabletoplab/bgg-harvester/internal/storage"
	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
	"github.com/tabletoplab/bgg-harvester/pkg/logging"
)

// DefaultMaxComments caps the comment page size when the caller passes a
// non-positive value.
const DefaultMaxComments = 500

// CommentSource resolves game names to catalog ids and fetches their
// comments. *bgg.Client satisfies it.
type CommentSource interface {
	LookupGameID(ctx context.Context, name string) (int, error)
	LookupComments(ctx context.Context, id, maxComments int) ([]bgg.Comment, error)
}

// Retriever orchestrates comment retrieval across a batch of games and
// persists snapshots through its store.
type Retriever struct {
	source CommentSource
	store  storage.SnapshotStore
	logger zerolog.Logger
}

// New wires a retriever to its collaborators
func New(source CommentSource, store storage.SnapshotStore) *Retriever {
	return &Retriever{
		source: source,
		store:  store,
		logger: logging.GetLogger("retriever"),
	}
}

// RetrieveComments processes every name in input order: id lookup, comment
// fetch, per-game snapshot, accumulate. A game whose id lookup fails in any
// way is logged and skipped; it never aborts the batch and never appears in
// the result. A failed comment fetch degrades to an empty list so the game
// is still recorded. The aggregate snapshot is written once at the end, even
// when empty. Persistence failures are logged and absorbed; the in-memory
// dataset is returned regardless.
func (r *Retriever) RetrieveComments(ctx context.Context, names []string, maxComments int) *dataset.Dataset {
	if maxComments <= 0 {
		maxComments = DefaultMaxComments
	}

	logger := r.logger.With().Str("run_id", uuid.NewString()).Logger()
	all := dataset.New()

	for _, name := range names {
		id, err := r.source.LookupGameID(ctx, name)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("game", name).
				Str("failure_kind", string(bgg.KindOf(err))).
				Msg("Game not found, skipping")
			continue
		}

		comments, err := r.source.LookupComments(ctx, id, maxComments)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("game", name).
				Int("game_id", id).
				Str("failure_kind", string(bgg.KindOf(err))).
				Msg("Comment fetch failed, recording empty list")
			comments = []bgg.Comment{}
		}

		all.Set(name, comments)
		logger.Info().Str("game", name).Int("comments", len(comments)).Msg("Retrieved comments")

		if err := r.store.SaveGameComments(ctx, name, comments); err != nil {
			logger.Error().Err(err).Str("game", name).Msg("Failed to save game comments")
		}
	}

	if err := r.store.SaveDataset(ctx, all); err != nil {
		logger.Error().Err(err).Msg("Failed to save full dataset")
	}
	return all
}

// LoadLocalDataset loads a previously saved aggregate snapshot. An empty
// path selects the store's own aggregate file. A missing or unparsable file
// yields an empty dataset with the reason logged, never an error.
func (r *Retriever) LoadLocalDataset(ctx context.Context, path string) *dataset.Dataset {
	ds, err := r.store.LoadDataset(ctx, path)
	if err != nil {
		r.logger.Error().Err(err).Str("path", path).Msg("Failed to load local dataset")
		return dataset.New()
	}
	return ds
}
