package migrations

import (
	"io/fs"
	"sort"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		t.Fatal("expected migrations to be embedded")
	}
	sort.Strings(files)

	if files[0] != "001_sheet.sql" {
		t.Fatalf("expected first migration 001_sheet.sql, got %s", files[0])
	}
}
