package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/playlog/pkg/playlog"
)

// PostgresStore implements playlog.Store and playlog.SchemaManager on a
// pgx connection pool. It issues one statement per row; there is no
// batching and no per-statement retry.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
// Panics if pool is nil.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	return &PostgresStore{pool: pool}
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Pool returns the underlying connection pool for advanced operations.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// CreateTables creates the five star-schema tables if they do not exist.
func (s *PostgresStore) CreateTables(ctx context.Context) error {
	ddl := []string{
		createSongsTable,
		createArtistsTable,
		createUsersTable,
		createTimeTable,
		createSongplaysTable,
	}
	for _, stmt := range ddl {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// DropTables drops the five star-schema tables if they exist. The fact
// table goes first so the drop order never matters to foreign keys.
func (s *PostgresStore) DropTables(ctx context.Context) error {
	ddl := []string{
		dropSongplaysTable,
		dropUsersTable,
		dropSongsTable,
		dropArtistsTable,
		dropTimeTable,
	}
	for _, stmt := range ddl {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("dropping tables: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) UpsertSong(ctx context.Context, row playlog.SongRow) error {
	_, err := s.pool.Exec(ctx, insertSong, row.ID, row.Title, row.ArtistID, row.Year, row.Duration)
	if err != nil {
		return fmt.Errorf("upserting song: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertArtist(ctx context.Context, row playlog.ArtistRow) error {
	_, err := s.pool.Exec(ctx, insertArtist, row.ID, row.Name, row.Location, row.Latitude, row.Longitude)
	if err != nil {
		return fmt.Errorf("upserting artist: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertUser(ctx context.Context, row playlog.UserRow) error {
	_, err := s.pool.Exec(ctx, insertUser, row.ID, row.FirstName, row.LastName, row.Gender, row.Level)
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertTime(ctx context.Context, row playlog.TimeRow) error {
	_, err := s.pool.Exec(ctx, insertTime,
		row.StartTime, row.Hour, row.Day, row.Week, row.Month, row.Year, row.Weekday)
	if err != nil {
		return fmt.Errorf("upserting time: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertSongplay(ctx context.Context, row playlog.SongplayRow) error {
	_, err := s.pool.Exec(ctx, insertSongplay,
		row.ID, row.StartTime, row.UserID, row.Level,
		row.SongID, row.ArtistID, row.SessionID, row.Location, row.UserAgent)
	if err != nil {
		return fmt.Errorf("inserting songplay: %w", err)
	}
	return nil
}

// LookupSong resolves a played (title, artist, duration) triple against
// the song and artist dimensions. A miss is not an error; activity logs
// reference far more songs than the metadata subset covers.
func (s *PostgresStore) LookupSong(ctx context.Context, title, artist string, duration float64) (string, string, bool, error) {
	var songID, artistID string
	err := s.pool.QueryRow(ctx, selectSongByPlay, title, artist, duration).Scan(&songID, &artistID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("querying song: %w", err)
	}
	return songID, artistID, true, nil
}

var (
	_ playlog.Store         = (*PostgresStore)(nil)
	_ playlog.SchemaManager = (*PostgresStore)(nil)
)
