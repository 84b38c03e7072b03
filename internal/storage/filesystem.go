package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tabletoplab/bgg-harvester/internal/dataset"
	"github.com/tabletoplab/bgg-harvester/pkg/bgg"
	"github.com/tabletoplab/bgg-harvester/pkg/logging"
)

const aggregateFilename = "full_comments_dataset.json"

// FilesystemStore persists snapshots as indented JSON files under a single
// directory. Review text is written verbatim, without HTML or non-ASCII
// escaping.
type FilesystemStore struct {
	dir     string
	metrics MetricsCollector
	logger  zerolog.Logger
}

// NewFilesystemStore creates the output directory if needed. A nil metrics
// collector selects the in-memory default.
func NewFilesystemStore(dir string, metrics MetricsCollector) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	if metrics == nil {
		metrics = NewSimpleMetricsCollector()
	}
	return &FilesystemStore{
		dir:     dir,
		metrics: metrics,
		logger:  logging.GetLogger("snapshot-store"),
	}, nil
}

// AggregatePath returns the path of the full dataset snapshot
func (s *FilesystemStore) AggregatePath() string {
	return filepath.Join(s.dir, aggregateFilename)
}

// GameCommentsPath returns the per-game snapshot path for a game name
func (s *FilesystemStore) GameCommentsPath(game string) string {
	return filepath.Join(s.dir, SanitizeFilename(game)+"_comments.json")
}

// SaveGameComments writes the per-game snapshot for one game
func (s *FilesystemStore) SaveGameComments(ctx context.Context, game string, comments []bgg.Comment) error {
	path := s.GameCommentsPath(game)
	err := s.timed("save_game_comments", func() error {
		if comments == nil {
			comments = []bgg.Comment{}
		}
		return s.writeJSON(path, comments)
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("game", game).Str("path", path).Msg("Saved game comments")
	return nil
}

// SaveDataset writes the aggregate snapshot, overwriting any prior one
func (s *FilesystemStore) SaveDataset(ctx context.Context, ds *dataset.Dataset) error {
	path := s.AggregatePath()
	err := s.timed("save_dataset", func() error {
		return s.writeJSON(path, ds)
	})
	if err != nil {
		return err
	}
	s.logger.Info().Int("games", ds.Len()).Str("path", path).Msg("Saved full dataset")
	return nil
}

// LoadDataset reads an aggregate snapshot. An empty path selects the store's
// own aggregate file.
func (s *FilesystemStore) LoadDataset(ctx context.Context, path string) (*dataset.Dataset, error) {
	if path == "" {
		path = s.AggregatePath()
	}

	var ds *dataset.Dataset
	err := s.timed("load_dataset", func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		ds = dataset.New()
		if err := json.Unmarshal(data, ds); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int("games", ds.Len()).Str("path", path).Msg("Loaded dataset")
	return ds, nil
}

func (s *FilesystemStore) writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func (s *FilesystemStore) timed(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.RecordMetric(StorageMetrics{
		OperationType: op,
		Duration:      time.Since(start).Nanoseconds(),
		Success:       err == nil,
		Backend:       "filesystem",
		Error:         err,
	})
	return err
}

// SanitizeFilename maps a game name onto a filesystem-safe string: every rune
// that is not a letter, digit, '.', '_' or '-' becomes '_'. Distinct names can
// collide ("A/B" and "A B" both become "A_B"); acceptable for this use.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		switch r {
		case '.', '_', '-':
			return r
		}
		return '_'
	}, name)
}
