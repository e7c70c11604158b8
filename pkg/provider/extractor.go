package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mindwell-ai/mindwell/backend/pkg/emotion"
)

// HTTPFeatureProvider calls an external feature-extraction service that
// computes mean pitch, tempo and mean MFCCs for a complete audio sample.
type HTTPFeatureProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPFeatureProvider(baseURL string) *HTTPFeatureProvider {
	return &HTTPFeatureProvider{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (p *HTTPFeatureProvider) Name() string {
	return "http-extractor"
}

type extractResponse struct {
	PitchMean float64   `json:"pitch_mean"`
	Tempo     float64   `json:"tempo"`
	MFCC      []float64 `json:"mfcc,omitempty"`
}

// Extract posts the raw audio and returns its feature set.
func (p *HTTPFeatureProvider) Extract(ctx context.Context, audio []byte) (*emotion.AcousticFeatures, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio")
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/extract", bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("feature extraction failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("feature extraction failed with status %d: %s", resp.StatusCode, string(body))
	}

	var extractResp extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&extractResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &emotion.AcousticFeatures{
		PitchMean: extractResp.PitchMean,
		Tempo:     extractResp.Tempo,
		Timbre:    extractResp.MFCC,
	}, nil
}
