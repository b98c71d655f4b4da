package db

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writePgpassFixture(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pgpass")
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("writing pgpass fixture: %v", err)
	}
	t.Setenv("PGPASSFILE", path)
	return path
}

func TestLookupPgpass_ExactMatch(t *testing.T) {
	writePgpassFixture(t, "dbhost:5433:mydb:myuser:secret\n", 0600)

	pw, ok := LookupPgpass("dbhost", 5433, "mydb", "myuser")
	if !ok {
		t.Fatal("expected a match")
	}
	if pw != "secret" {
		t.Errorf("password = %q, want secret", pw)
	}
}

func TestLookupPgpass_NoMatch(t *testing.T) {
	writePgpassFixture(t, "dbhost:5433:mydb:myuser:secret\n", 0600)

	if _, ok := LookupPgpass("otherhost", 5433, "mydb", "myuser"); ok {
		t.Error("expected no match for a different host")
	}
	if _, ok := LookupPgpass("dbhost", 5432, "mydb", "myuser"); ok {
		t.Error("expected no match for a different port")
	}
}

func TestLookupPgpass_Wildcards(t *testing.T) {
	writePgpassFixture(t, "*:*:*:myuser:anywhere\n", 0600)

	pw, ok := LookupPgpass("any.host", 9999, "anydb", "myuser")
	if !ok {
		t.Fatal("expected wildcard fields to match")
	}
	if pw != "anywhere" {
		t.Errorf("password = %q, want anywhere", pw)
	}
}

func TestLookupPgpass_FirstMatchWins(t *testing.T) {
	writePgpassFixture(t,
		"dbhost:5432:mydb:myuser:first\n"+
			"*:*:*:myuser:second\n", 0600)

	pw, ok := LookupPgpass("dbhost", 5432, "mydb", "myuser")
	if !ok || pw != "first" {
		t.Errorf("got %q/%v, want first match", pw, ok)
	}
}

func TestLookupPgpass_SkipsCommentsAndBlanks(t *testing.T) {
	writePgpassFixture(t,
		"# comment line\n"+
			"\n"+
			"dbhost:5432:mydb:myuser:secret\n", 0600)

	if _, ok := LookupPgpass("dbhost", 5432, "mydb", "myuser"); !ok {
		t.Error("expected the entry after comments to match")
	}
}

func TestLookupPgpass_EscapedCharacters(t *testing.T) {
	writePgpassFixture(t, `dbhost:5432:my\:db:myuser:pa\:ss\\word`+"\n", 0600)

	pw, ok := LookupPgpass("dbhost", 5432, "my:db", "myuser")
	if !ok {
		t.Fatal("expected escaped database name to match")
	}
	if pw != `pa:ss\word` {
		t.Errorf("password = %q, want %q", pw, `pa:ss\word`)
	}
}

func TestLookupPgpass_IgnoresWorldReadableFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission check does not apply on Windows")
	}
	writePgpassFixture(t, "dbhost:5432:mydb:myuser:secret\n", 0644)

	if _, ok := LookupPgpass("dbhost", 5432, "mydb", "myuser"); ok {
		t.Error("a group/world readable pgpass file must be ignored")
	}
}

func TestLookupPgpass_MissingFile(t *testing.T) {
	t.Setenv("PGPASSFILE", filepath.Join(t.TempDir(), "does-not-exist"))

	if _, ok := LookupPgpass("dbhost", 5432, "mydb", "myuser"); ok {
		t.Error("expected no match when the file is missing")
	}
}
