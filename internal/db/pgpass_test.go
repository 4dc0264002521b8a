package db

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePgpass(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pgpass")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	t.Setenv("PGPASSFILE", path)
	return path
}

func TestLookupPgpass_ExactMatch(t *testing.T) {
	writePgpass(t, "localhost:5432:playlog:etl:secret\n", 0600)

	pw, ok := LookupPgpass("localhost", 5432, "playlog", "etl")
	require.True(t, ok)
	assert.Equal(t, "secret", pw)
}

func TestLookupPgpass_Wildcards(t *testing.T) {
	writePgpass(t, "*:*:*:*:anything\n", 0600)

	pw, ok := LookupPgpass("db.internal", 5433, "whatever", "someone")
	require.True(t, ok)
	assert.Equal(t, "anything", pw)
}

func TestLookupPgpass_FirstMatchWins(t *testing.T) {
	writePgpass(t,
		"localhost:5432:playlog:etl:first\n"+
			"*:*:*:*:second\n",
		0600)

	pw, ok := LookupPgpass("localhost", 5432, "playlog", "etl")
	require.True(t, ok)
	assert.Equal(t, "first", pw)
}

func TestLookupPgpass_NoMatch(t *testing.T) {
	writePgpass(t, "otherhost:5432:playlog:etl:secret\n", 0600)

	_, ok := LookupPgpass("localhost", 5432, "playlog", "etl")
	assert.False(t, ok)
}

func TestLookupPgpass_SkipsCommentsAndBlankLines(t *testing.T) {
	writePgpass(t,
		"# development credentials\n"+
			"\n"+
			"localhost:5432:playlog:etl:secret\n",
		0600)

	pw, ok := LookupPgpass("localhost", 5432, "playlog", "etl")
	require.True(t, ok)
	assert.Equal(t, "secret", pw)
}

func TestLookupPgpass_EscapedColonInPassword(t *testing.T) {
	writePgpass(t, `localhost:5432:playlog:etl:pa\:ss`+"\n", 0600)

	pw, ok := LookupPgpass("localhost", 5432, "playlog", "etl")
	require.True(t, ok)
	assert.Equal(t, "pa:ss", pw)
}

func TestLookupPgpass_RejectsLoosePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission check does not apply on windows")
	}

	writePgpass(t, "localhost:5432:playlog:etl:secret\n", 0644)

	_, ok := LookupPgpass("localhost", 5432, "playlog", "etl")
	assert.False(t, ok)
}

func TestLookupPgpass_MissingFile(t *testing.T) {
	t.Setenv("PGPASSFILE", filepath.Join(t.TempDir(), "does-not-exist"))

	_, ok := LookupPgpass("localhost", 5432, "playlog", "etl")
	assert.False(t, ok)
}

func TestSplitPgpassLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a:b:c:d:e", []string{"a", "b", "c", "d", "e"}},
		{"escaped colon", `a\:b:c:d:e:f`, []string{"a:b", "c", "d", "e", "f"}},
		{"escaped backslash", `a\\:b:c:d:e`, []string{`a\`, "b", "c", "d", "e"}},
		{"trailing empty field", "a:b:c:d:", []string{"a", "b", "c", "d", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPgpassLine(tt.line))
		})
	}
}
