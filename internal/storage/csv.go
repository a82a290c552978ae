package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"honeytags/internal/model"
)

// csvHeader matches the tag output schema column names.
var csvHeader = []string{"Contract Address", "Public Name Tag", "Project Name", "UI/Website Link", "Public Note"}

// CsvStorage writes tags to a CSV file with a header row.
type CsvStorage struct {
	path string
	mu   sync.Mutex
}

func NewCsvStorage(path string) *CsvStorage {
	return &CsvStorage{path: path}
}

// PutTagBatch appends a batch of tags as CSV rows, writing the header when
// the file is empty.
func (s *CsvStorage) PutTagBatch(tags []model.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat output file: %w", err)
	}

	writer := csv.NewWriter(file)
	if stat.Size() == 0 {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}

	for _, tag := range tags {
		row := []string{tag.ContractAddress, tag.PublicNameTag, tag.ProjectName, tag.UILink, tag.PublicNote}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
