package playlog

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConnectionConfig holds resolved PostgreSQL connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	SSLMode  string
	AppName  string

	// ConnectTimeout limits how long connection establishment may take.
	ConnectTimeout time.Duration

	// AdditionalParams carries connection-string parameters that playlog
	// does not interpret itself (passed through to pgx).
	AdditionalParams map[string]string
}

// LoadConfig contains all parameters for a full ETL run.
type LoadConfig struct {
	// DataPath is the root directory holding song_data/ and log_data/.
	DataPath string

	// DatabaseName is the target database name.
	DatabaseName string

	// ConnectionString is the PostgreSQL connection string for the target database.
	ConnectionString string

	// Timeout is the global timeout for the entire run.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.DataPath == "" {
		errs = append(errs, fmt.Errorf("DataPath is required: %w", ErrInvalidConfig))
	}
	if c.DatabaseName == "" {
		errs = append(errs, fmt.Errorf("DatabaseName is required: %w", ErrInvalidConfig))
	}
	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// SetupConfig contains all parameters for schema creation.
type SetupConfig struct {
	DatabaseName     string
	ConnectionString string

	// Drop first drops the five tables before recreating them.
	Drop bool

	// Force bypasses interactive approval when used with Drop.
	Force bool

	Timeout time.Duration
	Verbose bool
}

// Validate checks if the SetupConfig has all required fields and valid values.
func (c *SetupConfig) Validate() error {
	var errs []error

	if c.DatabaseName == "" {
		errs = append(errs, fmt.Errorf("DatabaseName is required: %w", ErrInvalidConfig))
	}
	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}
	if c.Force && !c.Drop {
		errs = append(errs, fmt.Errorf("force flag requires drop to be enabled: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// SongRow is one row of the songs dimension table.
// Songs are immutable once loaded; re-ingesting the same song_id is a no-op.
type SongRow struct {
	ID       string
	Title    string
	ArtistID string
	Year     int
	Duration float64
}

// ArtistRow is one row of the artists dimension table. Immutable.
type ArtistRow struct {
	ID        string
	Name      string
	Location  *string
	Latitude  *float64
	Longitude *float64
}

// UserRow is one row of the users dimension table.
// The subscription level is last-write-wins on re-ingest.
type UserRow struct {
	ID        int
	FirstName *string
	LastName  *string
	Gender    *string
	Level     string
}

// TimeRow is one row of the time dimension table, a timestamp decomposed
// into its calendar parts. Weekday is Monday-based (Monday = 0), matching
// the convention of the upstream activity logs.
type TimeRow struct {
	StartTime time.Time
	Hour      int
	Day       int
	Week      int
	Month     int
	Year      int
	Weekday   int
}

// SongplayRow is one row of the songplays fact table. Append-only.
// SongID and ArtistID are nil when the played song could not be matched
// against the song and artist dimensions.
type SongplayRow struct {
	ID        uuid.UUID
	StartTime time.Time
	UserID    int
	Level     string
	SongID    *string
	ArtistID  *string
	SessionID int
	Location  string
	UserAgent string
}

// DatasetFiles holds the file paths discovered under a dataset root,
// split by category.
type DatasetFiles struct {
	SongFiles []string
	LogFiles  []string
}

// Total returns the total number of discovered files.
func (d DatasetFiles) Total() int {
	return len(d.SongFiles) + len(d.LogFiles)
}

// LoadReport summarizes a completed ETL run.
type LoadReport struct {
	SongFiles int
	LogFiles  int

	Songs     int
	Artists   int
	Users     int
	Times     int
	Songplays int

	// SkippedRecords counts individual records dropped for a missing
	// primary key or an unparseable line. Skips never abort the run.
	SkippedRecords int

	// UnmatchedPlays counts songplays inserted with NULL song/artist
	// references because no dimension row matched.
	UnmatchedPlays int
}
