package playlog

import "context"

// Store abstracts the star-schema tables. All upserts are idempotent on
// primary key: dimensions either ignore the conflict (immutable rows) or
// update the mutable attribute (user level); the fact insert ignores
// conflicts on its deterministic id.
//
// Errors returned from a Store are connection-level and abort the run;
// there is no per-statement retry or batching.
type Store interface {
	// UpsertSong inserts a song row, ignoring an existing song_id.
	UpsertSong(ctx context.Context, row SongRow) error

	// UpsertArtist inserts an artist row, ignoring an existing artist_id.
	UpsertArtist(ctx context.Context, row ArtistRow) error

	// UpsertUser inserts a user row; on conflict the subscription level
	// is overwritten (last write wins).
	UpsertUser(ctx context.Context, row UserRow) error

	// UpsertTime inserts a time row, ignoring an existing start_time.
	UpsertTime(ctx context.Context, row TimeRow) error

	// InsertSongplay appends a fact row, ignoring an existing songplay_id.
	InsertSongplay(ctx context.Context, row SongplayRow) error

	// LookupSong resolves a (title, artist name, duration) triple against
	// the song and artist dimensions. found is false when no row matches;
	// that is not an error.
	LookupSong(ctx context.Context, title, artist string, duration float64) (songID, artistID string, found bool, err error)
}

// SchemaManager creates and drops the star-schema tables.
type SchemaManager interface {
	// CreateTables creates the five tables if they do not exist.
	CreateTables(ctx context.Context) error

	// DropTables drops the five tables if they exist.
	DropTables(ctx context.Context) error
}
