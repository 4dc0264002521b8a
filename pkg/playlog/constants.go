package playlog

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Run completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied drop approval
	ExitExecutionFailed = 13 // SQL execution failed
	ExitDataPathMissing = 14 // Dataset directory not found
)

const (
	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first
	// connection retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between connection retries.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of connection retries.
	// Record processing is never retried; only connection establishment is.
	DefaultRetryMaxAttempts = 3

	// SongDataDir is the subdirectory of the dataset root holding song metadata files.
	SongDataDir = "song_data"

	// LogDataDir is the subdirectory of the dataset root holding activity log files.
	LogDataDir = "log_data"

	// NextSongPage is the activity-log page value that marks an actual songplay.
	// All other page values (Home, Login, ...) are navigation noise.
	NextSongPage = "NextSong"
)
