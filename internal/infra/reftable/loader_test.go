package reftable

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/evlt/nutstools/internal/domain"
)

func TestLoad_PlainText(t *testing.T) {
	tbl, err := NewLoader().Load(filepath.Join("testdata", "pc_NL_selection.csv"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if tbl.Len() != 7 {
		t.Fatalf("expected 7 rows, got %d", tbl.Len())
	}
	got, ok := tbl.Lookup("2675BP")
	if !ok || got != "NL333" {
		t.Fatalf("expected NL333 for 2675BP, got %q ok=%v", got, ok)
	}
}

func TestLoad_Zip(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "pc_NL_selection.csv"))
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	path := writeZip(t, "pc2020_NL_NUTS-2021_v2.0.csv", src)

	tbl, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got, _ := tbl.Lookup("8277AM"); got != "NL211" {
		t.Fatalf("expected NL211, got %q", got)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	path := filepath.Join("testdata", "pc_NL_selection.csv")
	a, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	b, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("expected identical tables")
	}
}

func TestLoad_StripsQuotesAndWhitespace(t *testing.T) {
	path := writeFile(t, "t.csv", "NUTS3;CODE;EXTRA\n' NL 333 ';' 2675 bp ';ignored\n")

	tbl, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got, ok := tbl.Lookup("2675BP"); !ok || got != "NL333" {
		t.Fatalf("expected NL333, got %q ok=%v", got, ok)
	}
}

func TestLoad_SkipsEmptyPostalCodes(t *testing.T) {
	path := writeFile(t, "t.csv", "NUTS3;CODE\nNL333;''\nNL211;8277AM\n")

	tbl, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", tbl.Len())
	}
}

func TestLoad_DuplicatePolicy(t *testing.T) {
	path := writeFile(t, "t.csv", "NUTS3;CODE\nNL333;2675BP\nNL332;2675 BP\n")

	last, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got, _ := last.Lookup("2675BP"); got != "NL332" {
		t.Fatalf("expected last row to win, got %q", got)
	}

	first, err := NewLoader(WithDuplicatePolicy(domain.DuplicateFirstWins)).Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got, _ := first.Lookup("2675BP"); got != "NL333" {
		t.Fatalf("expected first row to win, got %q", got)
	}

	_, err = NewLoader(WithDuplicatePolicy(domain.DuplicateReject)).Load(path)
	if !domain.IsKind(err, domain.KindDataFormat) {
		t.Fatalf("expected KindDataFormat, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		path func(t *testing.T) string
		kind domain.ErrorKind
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") },
			kind: domain.KindNotFound,
		},
		{
			name: "single column header",
			path: func(t *testing.T) string { return writeFile(t, "t.csv", "NUTS3\nNL333\n") },
			kind: domain.KindDataFormat,
		},
		{
			name: "short row",
			path: func(t *testing.T) string { return writeFile(t, "t.csv", "NUTS3;CODE\nNL333\n") },
			kind: domain.KindDataFormat,
		},
		{
			name: "empty file",
			path: func(t *testing.T) string { return writeFile(t, "t.csv", "") },
			kind: domain.KindDataFormat,
		},
		{
			name: "not a zip",
			path: func(t *testing.T) string { return writeFile(t, "t.zip", "NUTS3;CODE\n") },
			kind: domain.KindDataFormat,
		},
		{
			name: "empty zip",
			path: func(t *testing.T) string { return writeZip(t, "", nil) },
			kind: domain.KindDataFormat,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewLoader().Load(c.path(t))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domain.IsKind(err, c.kind) {
				t.Fatalf("expected %s, got %v", c.kind, err)
			}
		})
	}
}

func TestCleanCell(t *testing.T) {
	cases := map[string]string{
		"'NL333'":   "NL333",
		" 2675 BP ": "2675BP",
		"\t'a b'\n": "ab",
		"":          "",
		"it's":      "its",
	}
	for in, want := range cases {
		if got := CleanCell(in); got != want {
			t.Errorf("CleanCell(%q) = %q, want %q", in, got, want)
		}
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// writeZip creates an archive with a single entry; an empty name yields an
// archive without entries.
func writeZip(t *testing.T, entry string, content []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "table.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	if entry != "" {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("zip entry: %v", err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}
	return p
}
