package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/vvka-141/playlog/internal/files/filesystem"
	"github.com/vvka-141/playlog/pkg/playlog"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/data")
	return NewScannerWithFS(fs), fs
}

func TestNewScannerWithFS_NilProvider(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil provider")
		}
	}()
	NewScannerWithFS(nil)
}

func TestScanDataset(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("song_data/A/A/A/TRAAAAW128F429D538.json", `{"song_id":"S1"}`)
	fs.AddFile("song_data/A/B/C/TRABCEI128F424C983.json", `{"song_id":"S2"}`)
	fs.AddFile("log_data/2018/11/2018-11-01-events.json", `{"page":"NextSong"}`)
	fs.AddFile("log_data/2018/11/2018-11-02-events.json", `{"page":"Home"}`)
	fs.AddFile("log_data/2018/11/notes.txt", "not a data file")

	files, err := s.ScanDataset("/data")
	if err != nil {
		t.Fatalf("ScanDataset failed: %v", err)
	}

	if len(files.SongFiles) != 2 {
		t.Errorf("Expected 2 song files, got %d: %v", len(files.SongFiles), files.SongFiles)
	}
	if len(files.LogFiles) != 2 {
		t.Errorf("Expected 2 log files (txt excluded), got %d: %v", len(files.LogFiles), files.LogFiles)
	}
	if files.Total() != 4 {
		t.Errorf("Expected Total() == 4, got %d", files.Total())
	}
	if !sort.StringsAreSorted(files.SongFiles) {
		t.Errorf("Song files not sorted: %v", files.SongFiles)
	}
	if !sort.StringsAreSorted(files.LogFiles) {
		t.Errorf("Log files not sorted: %v", files.LogFiles)
	}
}

func TestScanDataset_MissingDataPath(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.ScanDataset("/nonexistent")
	if err == nil {
		t.Fatal("Expected error for missing data path")
	}
	if !errors.Is(err, playlog.ErrDataPathNotFound) {
		t.Errorf("Expected ErrDataPathNotFound, got %v", err)
	}
}

func TestScanDataset_MissingSubtrees(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("song_data/A/TRAAAAW128F429D538.json", `{"song_id":"S1"}`)
	// no log_data at all

	files, err := s.ScanDataset("/data")
	if err != nil {
		t.Fatalf("ScanDataset failed: %v", err)
	}

	if len(files.SongFiles) != 1 {
		t.Errorf("Expected 1 song file, got %d", len(files.SongFiles))
	}
	if len(files.LogFiles) != 0 {
		t.Errorf("Expected no log files, got %v", files.LogFiles)
	}
}

func TestScanDataset_EmptyDataset(t *testing.T) {
	s, _ := newTestScanner()

	files, err := s.ScanDataset("/data")
	if err != nil {
		t.Fatalf("ScanDataset failed: %v", err)
	}
	if files.Total() != 0 {
		t.Errorf("Expected empty dataset, got %d files", files.Total())
	}
}

func TestScanDataset_CaseInsensitiveExtension(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("log_data/2018-11-01-events.JSON", `{"page":"NextSong"}`)

	files, err := s.ScanDataset("/data")
	if err != nil {
		t.Fatalf("ScanDataset failed: %v", err)
	}
	if len(files.LogFiles) != 1 {
		t.Errorf("Expected .JSON to be discovered, got %v", files.LogFiles)
	}
}

func TestScanDataset_OSFilesystem(t *testing.T) {
	root := t.TempDir()

	songDir := filepath.Join(root, "song_data", "A")
	logDir := filepath.Join(root, "log_data", "2018", "11")
	for _, dir := range []string{songDir, logDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(songDir, "TRAAAAW.json"), []byte(`{"song_id":"S1"}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(logDir, "2018-11-01-events.json"), []byte(`{}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	files, err := NewScanner().ScanDataset(root)
	if err != nil {
		t.Fatalf("ScanDataset failed: %v", err)
	}
	if len(files.SongFiles) != 1 || len(files.LogFiles) != 1 {
		t.Errorf("Expected 1 song and 1 log file, got %d and %d", len(files.SongFiles), len(files.LogFiles))
	}
}
