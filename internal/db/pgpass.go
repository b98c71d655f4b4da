package db

import (
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

// LookupPgpass searches the .pgpass file for a password matching the
// connection parameters, following libpq matching rules: fields match
// literally or via "*", and a file with group or world access is
// ignored on Unix.
func LookupPgpass(host string, port int, database, username string) (string, bool) {
	path := pgpassPath()
	if path == "" {
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o077 != 0 {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	portStr := strconv.Itoa(port)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
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
			matchPgpassField(fields[3], username) {
			return fields[4], true
		}
	}

	return "", false
}

func matchPgpassField(field, value string) bool {
	return field == "*" || field == value
}

// splitPgpassLine splits a .pgpass line into its five colon-separated
// fields, honoring \: and \\ escapes.
func splitPgpassLine(line string) []string {
	var fields []string
	var current strings.Builder
	escaped := false

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}
