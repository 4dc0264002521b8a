package etl

import (
	"context"
	"fmt"

	"github.com/vvka-141/playlog/internal/files/filesystem"
	"github.com/vvka-141/playlog/pkg/playlog"
)

// Loader drives a full ETL run: discover dataset files, load song
// metadata into the dimensions, then replay the activity logs into the
// user and time dimensions and the fact table.
//
// Files are processed strictly one at a time, in the order the scanner
// returns them.
type Loader struct {
	scanner playlog.DatasetScanner
	store   playlog.Store
	fs      filesystem.Provider
	logger  playlog.Logger
}

// NewLoader creates a Loader reading files from the OS filesystem.
// Panics if scanner, store or logger is nil.
func NewLoader(scanner playlog.DatasetScanner, store playlog.Store, logger playlog.Logger) *Loader {
	return NewLoaderWithFS(scanner, store, logger, filesystem.NewOSFileSystem())
}

// NewLoaderWithFS creates a Loader with a custom filesystem provider.
// This is primarily useful for testing with in-memory datasets.
// Panics if any dependency is nil.
func NewLoaderWithFS(scanner playlog.DatasetScanner, store playlog.Store, logger playlog.Logger, fs filesystem.Provider) *Loader {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fs == nil {
		panic("fs cannot be nil")
	}
	return &Loader{scanner: scanner, store: store, fs: fs, logger: logger}
}

// Run executes the full load. Song files are processed before log files
// so songplay resolution sees a complete song dimension. The returned
// report is valid even on error and reflects the work done so far.
func (l *Loader) Run(ctx context.Context, cfg playlog.LoadConfig) (playlog.LoadReport, error) {
	var report playlog.LoadReport

	files, err := l.scanner.ScanDataset(cfg.DataPath)
	if err != nil {
		return report, err
	}

	l.logger.Info("%d files found in %s", len(files.SongFiles), playlog.SongDataDir)
	l.logger.Info("%d files found in %s", len(files.LogFiles), playlog.LogDataDir)

	for i, path := range files.SongFiles {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := l.processSongFile(ctx, path, &report); err != nil {
			return report, err
		}
		report.SongFiles++
		l.logger.Info("%d/%d song files processed", i+1, len(files.SongFiles))
	}

	for i, path := range files.LogFiles {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := l.processLogFile(ctx, path, &report); err != nil {
			return report, err
		}
		report.LogFiles++
		l.logger.Info("%d/%d log files processed", i+1, len(files.LogFiles))
	}

	l.logger.Info("load complete: %d songs, %d artists, %d users, %d timestamps, %d songplays (%d unmatched, %d records skipped)",
		report.Songs, report.Artists, report.Users, report.Times, report.Songplays,
		report.UnmatchedPlays, report.SkippedRecords)

	return report, nil
}

func (l *Loader) processSongFile(ctx context.Context, path string, report *playlog.LoadReport) error {
	content, err := l.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	entries, skipped := ParseSongFile(content)
	report.SkippedRecords += skipped
	if skipped > 0 {
		l.logger.Verbose("skipped %d records in %s", skipped, path)
	}

	for _, entry := range entries {
		// artist first; the song row references it
		if err := l.store.UpsertArtist(ctx, entry.Artist); err != nil {
			return fmt.Errorf("%w: artist %s: %w", playlog.ErrExecutionFailed, entry.Artist.ID, err)
		}
		report.Artists++

		if err := l.store.UpsertSong(ctx, entry.Song); err != nil {
			return fmt.Errorf("%w: song %s: %w", playlog.ErrExecutionFailed, entry.Song.ID, err)
		}
		report.Songs++
	}

	return nil
}

func (l *Loader) processLogFile(ctx context.Context, path string, report *playlog.LoadReport) error {
	content, err := l.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	events, skipped := ParseLogFile(content)
	report.SkippedRecords += skipped
	if skipped > 0 {
		l.logger.Verbose("skipped %d records in %s", skipped, path)
	}

	for _, ev := range events {
		if ev.Page != playlog.NextSongPage {
			continue
		}
		if !ev.UserID.Valid || ev.TS == 0 {
			report.SkippedRecords++
			l.logger.Verbose("skipped event without user id or timestamp in %s", path)
			continue
		}

		if err := l.processPlayEvent(ctx, ev, report); err != nil {
			return err
		}
	}

	return nil
}

func (l *Loader) processPlayEvent(ctx context.Context, ev LogEvent, report *playlog.LoadReport) error {
	timeRow := DecomposeTime(ev.TS)
	if err := l.store.UpsertTime(ctx, timeRow); err != nil {
		return fmt.Errorf("%w: time %s: %w", playlog.ErrExecutionFailed, timeRow.StartTime, err)
	}
	report.Times++

	userRow := playlog.UserRow{
		ID:        ev.UserID.Value,
		FirstName: ev.FirstName,
		LastName:  ev.LastName,
		Gender:    ev.Gender,
		Level:     ev.Level,
	}
	if err := l.store.UpsertUser(ctx, userRow); err != nil {
		return fmt.Errorf("%w: user %d: %w", playlog.ErrExecutionFailed, userRow.ID, err)
	}
	report.Users++

	play := playlog.SongplayRow{
		ID:        SongplayID(ev.TS, ev.UserID.Value, ev.SessionID),
		StartTime: timeRow.StartTime,
		UserID:    ev.UserID.Value,
		Level:     ev.Level,
		SessionID: ev.SessionID,
		Location:  ev.Location,
		UserAgent: ev.UserAgent,
	}

	songID, artistID, found, err := l.store.LookupSong(ctx, ev.Song, ev.Artist, ev.Length)
	if err != nil {
		return fmt.Errorf("%w: song lookup: %w", playlog.ErrExecutionFailed, err)
	}
	if found {
		play.SongID = &songID
		play.ArtistID = &artistID
	} else {
		report.UnmatchedPlays++
		l.logger.Verbose("no song match for %q by %q (%.2fs)", ev.Song, ev.Artist, ev.Length)
	}

	if err := l.store.InsertSongplay(ctx, play); err != nil {
		return fmt.Errorf("%w: songplay %s: %w", playlog.ErrExecutionFailed, play.ID, err)
	}
	report.Songplays++

	return nil
}
