package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mindwell-ai/mindwell/backend/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	return s, dir
}

func TestNewFileStoreCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListSummariesEmpty(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.ListSummaries()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppendAndListSummaries(t *testing.T) {
	s, _ := newStore(t)

	first := &session.Summary{
		ID:           "conv_1",
		Title:        "Conversation with Alex",
		UserInfo:     session.Profile{Name: "Alex", Age: "29", Gender: "female"},
		Summary:      "A conversation was held covering 1 topics.",
		Timestamp:    time.Now().UTC().Truncate(time.Second),
		MessageCount: 2,
		Duration:     "1m",
		Transcript: []session.TranscriptMessage{
			{Sender: "user", Text: "hi"},
			{Sender: "assistant", Text: "hello"},
		},
	}
	second := &session.Summary{ID: "conv_2", Title: "Conversation with User"}

	require.NoError(t, s.AppendSummary(first))
	require.NoError(t, s.AppendSummary(second))

	got, err := s.ListSummaries()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "conv_1", got[0].ID)
	assert.Equal(t, "conv_2", got[1].ID)
	assert.Equal(t, first.UserInfo, got[0].UserInfo)
	assert.Equal(t, first.Transcript, got[0].Transcript)
}

func TestSummaryWireFormat(t *testing.T) {
	s, dir := newStore(t)

	require.NoError(t, s.AppendSummary(&session.Summary{
		ID:       "conv_1",
		UserInfo: session.Profile{Name: "Alex"},
	}))

	data, err := os.ReadFile(filepath.Join(dir, "conversations.json"))
	require.NoError(t, err)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Contains(t, raw[0], "user_info")
	assert.Contains(t, raw[0], "messageCount")
}

func TestMemoryRoundTrip(t *testing.T) {
	s, _ := newStore(t)

	entries := map[string][]string{
		"how do I sleep": {"keep a routine", "keep a routine"},
		"diet tips":      {"eat regularly"},
	}
	require.NoError(t, s.PutMemory(entries))

	got, err := s.GetMemory()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestGetMemoryMissingFile(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.GetMemory()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCorruptDocumentsSurface(t *testing.T) {
	s, dir := newStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "conversations.json"), []byte("{"), 0o644))
	_, err := s.ListSummaries()
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "learning_memory.json"), []byte("not json"), 0o644))
	_, err = s.GetMemory()
	assert.Error(t, err)
}
