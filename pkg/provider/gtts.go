package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GTTSProvider synthesizes speech through the Google Translate TTS endpoint
// and returns one complete mp3 per call. The endpoint caps the text length
// per request, so long replies are synthesized in chunks and concatenated.
type GTTSProvider struct {
	language string
	baseURL  string
	client   *http.Client
}

const gttsMaxChunk = 200

func NewGTTSProvider(language string) *GTTSProvider {
	if language == "" {
		language = "en"
	}
	return &GTTSProvider{
		language: language,
		baseURL:  "https://translate.google.com/translate_tts",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (p *GTTSProvider) Name() string {
	return "gtts"
}

// Synthesize returns mp3 bytes for text. It either succeeds with the full
// audio or fails with no partial result.
func (p *GTTSProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}

	var audio []byte
	for _, chunk := range splitChunks(text, gttsMaxChunk) {
		data, err := p.fetchChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		audio = append(audio, data...)
	}
	return audio, nil
}

func (p *GTTSProvider) fetchChunk(ctx context.Context, text string) ([]byte, error) {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", p.language)
	query.Set("q", text)

	httpReq, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts request failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// splitChunks breaks text on rune boundaries into pieces of at most max runes.
func splitChunks(text string, max int) []string {
	runes := []rune(text)
	var chunks []string
	for len(runes) > max {
		chunks = append(chunks, string(runes[:max]))
		runes = runes[max:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
