// Package store is the file-backed persistence layer: the append-only
// conversation summary log and the learning memory document. Both are
// whole-document JSON files with read-modify-write semantics; there is no
// partial update, and a write failure surfaces to the caller with the file
// left as it was.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mindwell-ai/mindwell/backend/pkg/session"
)

// FileStore keeps its documents under one data directory. The mutex
// serializes read-modify-write cycles within this process; writers in other
// processes are last-writer-wins, per the store contract.
type FileStore struct {
	mu                sync.Mutex
	conversationsPath string
	memoryPath        string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{
		conversationsPath: filepath.Join(dataDir, "conversations.json"),
		memoryPath:        filepath.Join(dataDir, "learning_memory.json"),
	}, nil
}

// AppendSummary appends one summary record to the conversation log.
func (f *FileStore) AppendSummary(record *session.Summary) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	summaries, err := f.loadSummaries()
	if err != nil {
		return err
	}
	summaries = append(summaries, record)
	return writeJSON(f.conversationsPath, summaries)
}

// ListSummaries returns all persisted summaries in append order.
func (f *FileStore) ListSummaries() ([]*session.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadSummaries()
}

func (f *FileStore) loadSummaries() ([]*session.Summary, error) {
	data, err := os.ReadFile(f.conversationsPath)
	if os.IsNotExist(err) {
		return []*session.Summary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.conversationsPath, err)
	}

	var summaries []*session.Summary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.conversationsPath, err)
	}
	return summaries, nil
}

// GetMemory loads the learning memory mapping; a missing file reads as empty.
func (f *FileStore) GetMemory() (map[string][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.memoryPath)
	if os.IsNotExist(err) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.memoryPath, err)
	}

	var entries map[string][]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.memoryPath, err)
	}
	return entries, nil
}

// PutMemory replaces the learning memory document.
func (f *FileStore) PutMemory(entries map[string][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return writeJSON(f.memoryPath, entries)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
