package playlog_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vvka-141/playlog/pkg/playlog"
)

func TestLoadConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    playlog.LoadConfig
		wantError bool
	}{
		{
			name: "valid config",
			config: playlog.LoadConfig{
				DataPath:         "./data",
				DatabaseName:     "playlog",
				ConnectionString: "postgresql://localhost:5432/playlog",
				Timeout:          time.Minute,
			},
			wantError: false,
		},
		{
			name: "missing data path",
			config: playlog.LoadConfig{
				DatabaseName:     "playlog",
				ConnectionString: "postgresql://localhost:5432/playlog",
			},
			wantError: true,
		},
		{
			name: "missing database name",
			config: playlog.LoadConfig{
				DataPath:         "./data",
				ConnectionString: "postgresql://localhost:5432/playlog",
			},
			wantError: true,
		},
		{
			name: "missing connection string",
			config: playlog.LoadConfig{
				DataPath:     "./data",
				DatabaseName: "playlog",
			},
			wantError: true,
		},
		{
			name: "negative timeout",
			config: playlog.LoadConfig{
				DataPath:         "./data",
				DatabaseName:     "playlog",
				ConnectionString: "postgresql://localhost:5432/playlog",
				Timeout:          -time.Second,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantError {
				t.Fatalf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, playlog.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSetupConfig_Validate(t *testing.T) {
	valid := playlog.SetupConfig{
		DatabaseName:     "playlog",
		ConnectionString: "postgresql://localhost:5432/playlog",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	forceWithoutDrop := valid
	forceWithoutDrop.Force = true
	if err := forceWithoutDrop.Validate(); !errors.Is(err, playlog.ErrInvalidConfig) {
		t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
	}

	dropWithForce := valid
	dropWithForce.Drop = true
	dropWithForce.Force = true
	if err := dropWithForce.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestDatasetFiles_Total(t *testing.T) {
	files := playlog.DatasetFiles{
		SongFiles: []string{"a.json", "b.json"},
		LogFiles:  []string{"c.json"},
	}
	if got := files.Total(); got != 3 {
		t.Errorf("Total() = %d, want 3", got)
	}
}
