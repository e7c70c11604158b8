package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GoogleASRProvider transcribes complete audio samples through the Google
// Cloud Speech-to-Text REST API.
type GoogleASRProvider struct {
	apiKey   string
	language string
	baseURL  string
	client   *http.Client
}

func NewGoogleASRProvider(apiKey, language string) *GoogleASRProvider {
	if language == "" {
		language = "en-US"
	}
	return &GoogleASRProvider{
		apiKey:   apiKey,
		language: language,
		baseURL:  "https://speech.googleapis.com/v1",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (p *GoogleASRProvider) Name() string {
	return "google-speech"
}

type speechRequest struct {
	Config speechConfig `json:"config"`
	Audio  speechAudio  `json:"audio"`
}

type speechConfig struct {
	LanguageCode string `json:"languageCode"`
}

type speechAudio struct {
	Content string `json:"content"` // base64
}

type speechResponse struct {
	Results []speechResult `json:"results"`
}

type speechResult struct {
	Alternatives []speechAlternative `json:"alternatives"`
}

type speechAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Transcribe recognizes one complete audio sample. Audio the service cannot
// turn into text comes back as ErrUnrecognized; transport and service-side
// failures come back as ErrService. Neither mutates any session.
func (p *GoogleASRProvider) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty audio", ErrUnrecognized)
	}

	reqBody, err := json.Marshal(speechRequest{
		Config: speechConfig{LanguageCode: p.language},
		Audio:  speechAudio{Content: base64.StdEncoding.EncodeToString(audio)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/speech:recognize?key=%s", p.baseURL, p.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ErrService, resp.StatusCode, string(body))
	}

	var speechResp speechResponse
	if err := json.NewDecoder(resp.Body).Decode(&speechResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrService, err)
	}

	if len(speechResp.Results) == 0 || len(speechResp.Results[0].Alternatives) == 0 {
		return "", ErrUnrecognized
	}
	transcript := speechResp.Results[0].Alternatives[0].Transcript
	if transcript == "" {
		return "", ErrUnrecognized
	}
	return transcript, nil
}
