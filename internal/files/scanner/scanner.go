package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/playlog/internal/files/filesystem"
	"github.com/vvka-141/playlog/pkg/playlog"
)

// Scanner discovers dataset files from a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as the
// provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.Provider
}

// NewScanner creates a dataset scanner backed by the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a dataset scanner with a custom filesystem
// provider. This is primarily useful for testing with in-memory trees.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.Provider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ScanDataset recursively scans dataPath/song_data and dataPath/log_data
// and returns the discovered .json file paths in lexical order. A missing
// subtree yields an empty list for that category; a missing dataPath is an
// error wrapping playlog.ErrDataPathNotFound.
func (s *Scanner) ScanDataset(dataPath string) (playlog.DatasetFiles, error) {
	info, err := s.fsProvider.Stat(dataPath)
	if err != nil {
		return playlog.DatasetFiles{}, fmt.Errorf("%w: %s", playlog.ErrDataPathNotFound, dataPath)
	}
	if !info.IsDir() {
		return playlog.DatasetFiles{}, fmt.Errorf("%w: %s is not a directory", playlog.ErrDataPathNotFound, dataPath)
	}

	songFiles, err := s.scanSubtree(filepath.Join(dataPath, playlog.SongDataDir))
	if err != nil {
		return playlog.DatasetFiles{}, fmt.Errorf("failed to scan song data: %w", err)
	}

	logFiles, err := s.scanSubtree(filepath.Join(dataPath, playlog.LogDataDir))
	if err != nil {
		return playlog.DatasetFiles{}, fmt.Errorf("failed to scan log data: %w", err)
	}

	return playlog.DatasetFiles{
		SongFiles: songFiles,
		LogFiles:  logFiles,
	}, nil
}

// scanSubtree collects the .json files under root. A nonexistent root is
// not an error; the dataset may legitimately contain only one category.
func (s *Scanner) scanSubtree(root string) ([]string, error) {
	if _, err := s.fsProvider.Stat(root); err != nil {
		return nil, nil
	}

	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", root, err)
	}

	var files []string
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() {
			return nil
		}
		if !isJSONFile(file.Path()) {
			return nil
		}
		files = append(files, file.Path())
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func isJSONFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Verify Scanner implements the interface at compile time
var _ playlog.DatasetScanner = (*Scanner)(nil)
