package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"price-watcher/models"
	"price-watcher/utils"
)

var _ ItemStore = (*FileStore)(nil)

func TestFileStoreMissingFileLoadsEmpty(t *testing.T) {
	s := NewFileStore(utils.Discard())

	items := s.Load(filepath.Join(t.TempDir(), "best.txt"))
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", items)
	}
}

func TestFileStoreSaveThenLoad(t *testing.T) {
	s := NewFileStore(utils.Discard())
	path := filepath.Join(t.TempDir(), "nested", "best.txt")

	want := []models.Item{
		models.NewItem(76916, decimal.RequireFromString("99.99"), "Porsche 963"),
		models.NewItem(76912, decimal.RequireFromString("120"), "Fast & Furious 1970 Dodge Charger R/T"),
	}
	if err := s.Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "76916;99.99;Porsche 963\n76912;120;Fast & Furious 1970 Dodge Charger R/T\n" {
		t.Errorf("unexpected file content %q", got)
	}

	got := s.Load(path)
	if len(got) != len(want) {
		t.Fatalf("loaded %d items, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("item %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	s := NewFileStore(utils.Discard())
	path := filepath.Join(t.TempDir(), "latest.txt")

	first := []models.Item{models.NewItem(1, decimal.NewFromInt(1), "A"), models.NewItem(2, decimal.NewFromInt(2), "B")}
	if err := s.Save(path, first); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(path, nil); err != nil {
		t.Fatal(err)
	}

	if got := s.Load(path); len(got) != 0 {
		t.Errorf("expected empty file after overwrite, got %v", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestFileStoreSkipsMalformedAndDuplicateRows(t *testing.T) {
	s := NewFileStore(utils.Discard())
	path := filepath.Join(t.TempDir(), "wanted-sets.txt")

	content := "76916;0;placeholder\n" +
		"\n" +
		"broken row\n" +
		"abc;1;bad code\n" +
		"76912;x;bad price\n" +
		"76916;5;duplicate\n" +
		"76905;0;Ford GT\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := s.Load(path)
	if codes := models.Codes(got); len(codes) != 2 || codes[0] != 76916 || codes[1] != 76905 {
		t.Fatalf("codes: got %v, want [76916 76905]", codes)
	}
	if got[0].Name != "placeholder" || got[1].Name != "Ford GT" {
		t.Errorf("names: got %q, %q", got[0].Name, got[1].Name)
	}
}

func TestFileStoreKeepsRejectedRows(t *testing.T) {
	s := NewFileStore(utils.Discard())
	path := filepath.Join(t.TempDir(), "best-prices.txt")

	content := "76916;99.99;Porsche 963\n" +
		"76912;49.99;Dodge; Charger\n" +
		"76905;cheap;Ford GT\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := s.Load(path)
	if codes := models.Codes(got); len(codes) != 1 || codes[0] != 76916 {
		t.Fatalf("codes: got %v, want [76916]", codes)
	}

	kept, err := os.ReadFile(path + RejectedSuffix)
	if err != nil {
		t.Fatalf("rejected rows not kept: %v", err)
	}
	if want := "76912;49.99;Dodge; Charger\n76905;cheap;Ford GT\n"; string(kept) != want {
		t.Errorf("rejected file = %q; want %q", kept, want)
	}
}

func TestFileStoreCleanLoadWritesNoRejectedFile(t *testing.T) {
	s := NewFileStore(utils.Discard())
	path := filepath.Join(t.TempDir(), "best-prices.txt")
	if err := os.WriteFile(path, []byte("76916;99.99;Porsche 963\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s.Load(path)
	if _, err := os.Stat(path + RejectedSuffix); !os.IsNotExist(err) {
		t.Errorf("unexpected rejected file, stat err = %v", err)
	}
}

func TestFileStoreSeparatorInNameSurvivesRoundTrip(t *testing.T) {
	s := NewFileStore(utils.Discard())
	path := filepath.Join(t.TempDir(), "best-prices.txt")
	best := []models.Item{
		models.NewItem(76916, decimal.RequireFromString("99.99"), "Porsche 963; Le Mans"),
		models.NewItem(76905, decimal.RequireFromString("89.9"), "Ford GT"),
	}

	if err := s.Save(path, best); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got := s.Load(path)
	if codes := models.Codes(got); len(codes) != 2 || codes[0] != 76916 || codes[1] != 76905 {
		t.Fatalf("codes: got %v, want [76916 76905]", codes)
	}
	if !got[0].Price.Equal(best[0].Price) {
		t.Errorf("price: got %s, want %s", got[0].Price, best[0].Price)
	}
	if _, err := os.Stat(path + RejectedSuffix); !os.IsNotExist(err) {
		t.Errorf("no row should be rejected, stat err = %v", err)
	}
}

func TestFileStoreSaveReportsFailure(t *testing.T) {
	s := NewFileStore(utils.Discard())
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := s.Save(filepath.Join(blocker, "best.txt"), []models.Item{models.NewItem(1, decimal.NewFromInt(1), "A")})
	if err == nil {
		t.Fatal("expected error when parent path is a file")
	}
}
