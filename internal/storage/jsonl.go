package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"honeytags/internal/model"
)

// JsonlStorage writes tags to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutTagBatch appends a batch of tags as JSON lines.
func (s *JsonlStorage) PutTagBatch(tags []model.Tag) error {
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

	writer := bufio.NewWriter(file)
	for _, tag := range tags {
		line, err := json.Marshal(tag)
		if err != nil {
			return fmt.Errorf("marshal tag: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write tag: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}

// ReadTagFile loads tags back from a JSONL file written by JsonlStorage.
func ReadTagFile(path string) ([]model.Tag, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tag file: %w", err)
	}
	defer file.Close()

	var tags []model.Tag
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var tag model.Tag
		if err := json.Unmarshal(line, &tag); err != nil {
			return nil, fmt.Errorf("parse tag line: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tag file: %w", err)
	}

	return tags, nil
}
