package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"price-watcher/models"
	"price-watcher/utils"
)

// FileStore keeps item lists in flat "code;price;name" text files, one
// record per line and no header. It is safe for concurrent use.
type FileStore struct {
	mu     sync.Mutex
	logger *utils.Logger
}

// NewFileStore creates a FileStore logging through logger.
func NewFileStore(logger *utils.Logger) *FileStore {
	return &FileStore{logger: logger}
}

// RejectedSuffix is appended to a record file's path to name the file that
// collects the raw text of rows Load could not parse.
const RejectedSuffix = ".rejected"

// Load reads the records in path. Malformed rows and repeated codes are
// skipped with a warning; a missing or unreadable file yields an empty list.
// Malformed rows are appended verbatim to path+RejectedSuffix so that a later
// Save of the same path does not lose them for good.
func (s *FileStore) Load(path string) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("[store] File %s not found, starting empty", path)
		} else {
			s.logger.Error("[store] Cannot open %s: %v", path, err)
		}
		return []models.Item{}
	}
	defer f.Close()

	items := make([]models.Item, 0)
	seen := utils.NewSet[int]()
	var rejected []string

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		it, err := models.ParseItemRow(line)
		if err != nil {
			s.logger.Warn("[store] %s:%d skipped: %v", path, lineNo, err)
			rejected = append(rejected, line)
			continue
		}
		if !seen.Add(it.Code) {
			s.logger.Warn("[store] %s:%d skipped: duplicate code %d", path, lineNo, it.Code)
			continue
		}
		items = append(items, it)
	}
	if err := sc.Err(); err != nil {
		s.logger.Error("[store] Reading %s stopped at line %d: %v", path, lineNo, err)
	}
	if len(rejected) > 0 {
		s.keepRejected(path, rejected)
	}

	s.logger.Debug("[store] Loaded %d records from %s", len(items), path)
	return items
}

// Save overwrites path with items. The data goes to a temporary file in the
// same directory first and is renamed into place, so a failed save leaves
// the previous file intact. Intermediate directories are created.
func (s *FileStore) Save(path string, items []models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("storage: create dir %q: %w", dir, err)
	}

	var buf bytes.Buffer
	for _, it := range items {
		buf.WriteString(it.Row())
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: create temp file for %q: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: close %q: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("storage: replace %q: %w", path, err)
	}

	s.logger.Debug("[store] Saved %d records to %s", len(items), path)
	return nil
}

func (s *FileStore) keepRejected(path string, lines []string) {
	rejectPath := path + RejectedSuffix

	f, err := os.OpenFile(rejectPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		s.logger.Error("[store] Cannot keep %d rejected rows of %s: %v", len(lines), path, err)
		return
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, l := range lines {
		w.WriteString(l)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		s.logger.Error("[store] Writing %s: %v", rejectPath, err)
		return
	}
	s.logger.Warn("[store] %d rows of %s are not loaded and will be missing from its next save; raw text kept in %s",
		len(lines), path, rejectPath)
}
