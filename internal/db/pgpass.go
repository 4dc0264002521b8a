package db

import (
	"bufio"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// pgpassPath returns the platform-appropriate .pgpass file path.
func pgpassPath() string {
	if custom := os.Getenv("PGPASSFILE"); custom != "" {
		return custom
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "postgresql", "pgpass.conf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pgpass")
}

// LookupPgpass resolves a password from the PostgreSQL-standard .pgpass
// file. Returns false when the file is absent, unreadable, badly
// permissioned, or has no matching entry.
//
// Entry format: host:port:database:user:password, with * as wildcard and
// backslash escaping for literal : and \ characters.
func LookupPgpass(host string, port int, database, user string) (string, bool) {
	path := pgpassPath()
	if path == "" {
		return "", false
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	// libpq refuses group/world accessible files on Unix
	if runtime.GOOS != "windows" {
		info, err := f.Stat()
		if err != nil || info.Mode().Perm()&0077 != 0 {
			return "", false
		}
	}

	portStr := strconv.Itoa(port)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitPgpassLine(line)
		if len(fields) != 5 {
			continue
		}

		if matchPgpassField(fields[0], host) &&
			matchPgpassField(fields[1], portStr) &&
			matchPgpassField(fields[2], database) &&
			matchPgpassField(fields[3], user) {
			return fields[4], true
		}
	}

	return "", false
}

// splitPgpassLine splits on unescaped colons and unescapes the fields.
func splitPgpassLine(line string) []string {
	var fields []string
	var cur strings.Builder

	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())

	return fields
}

func matchPgpassField(pattern, value string) bool {
	return pattern == "*" || pattern == value
}
