package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGTTSSynthesize(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "tw-ob", q.Get("client"))
		assert.Equal(t, "en", q.Get("tl"))
		queries = append(queries, q.Get("q"))
		w.Write([]byte("mp3:" + q.Get("q") + ";"))
	}))
	defer server.Close()

	p := NewGTTSProvider("")
	p.baseURL = server.URL

	audio, err := p.Synthesize(context.Background(), "Have a great day!")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3:Have a great day!;"), audio)
	assert.Equal(t, []string{"Have a great day!"}, queries)
}

func TestGTTSSynthesizeChunksLongText(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		w.Write([]byte("x"))
	}))
	defer server.Close()

	p := NewGTTSProvider("fr")
	p.baseURL = server.URL

	long := strings.Repeat("a", gttsMaxChunk+50)
	audio, err := p.Synthesize(context.Background(), long)
	require.NoError(t, err)

	// two requests, chunks concatenated in order
	require.Len(t, queries, 2)
	assert.Len(t, queries[0], gttsMaxChunk)
	assert.Len(t, queries[1], 50)
	assert.Equal(t, []byte("xx"), audio)
}

func TestGTTSSynthesizeEmptyText(t *testing.T) {
	p := NewGTTSProvider("")

	_, err := p.Synthesize(context.Background(), "")
	assert.Error(t, err)
}

func TestGTTSSynthesizeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	p := NewGTTSProvider("")
	p.baseURL = server.URL

	_, err := p.Synthesize(context.Background(), "hello")
	assert.Error(t, err)
}

func TestSplitChunks(t *testing.T) {
	assert.Equal(t, []string{"abc"}, splitChunks("abc", 5))
	assert.Equal(t, []string{"ab", "cd", "e"}, splitChunks("abcde", 2))
	assert.Empty(t, splitChunks("", 2))
	// rune boundaries, not bytes
	assert.Equal(t, []string{"hél", "lo"}, splitChunks("héllo", 3))
}
