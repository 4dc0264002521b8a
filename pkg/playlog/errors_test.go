package playlog_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/playlog/pkg/playlog"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, playlog.ExitSuccess},
		{"general error", errors.New("something went wrong"), playlog.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag --foo"), playlog.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), playlog.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), playlog.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), playlog.ExitUsageError},
		{"invalid config", playlog.ErrInvalidConfig, playlog.ExitConfigError},
		{"data path missing", playlog.ErrDataPathNotFound, playlog.ExitDataPathMissing},
		{"approval denied", playlog.ErrApprovalDenied, playlog.ExitApprovalDenied},
		{"execution failed", playlog.ErrExecutionFailed, playlog.ExitExecutionFailed},
		{"connection failed", playlog.ErrConnectionFailed, playlog.ExitConnectionError},
		{"connection refused pattern", errors.New("dial tcp: connection refused"), playlog.ExitConnectionError},
		{"no such host pattern", errors.New("lookup db.local: no such host"), playlog.ExitConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := playlog.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_WrappedSentinels(t *testing.T) {
	err := fmt.Errorf("load failed: %w", playlog.ErrConnectionFailed)
	if got := playlog.ExitCodeForError(err); got != playlog.ExitConnectionError {
		t.Errorf("ExitCodeForError(wrapped) = %d, want %d", got, playlog.ExitConnectionError)
	}
}
