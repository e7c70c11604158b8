package types

import "github.com/mindwell-ai/mindwell/backend/pkg/session"

// Session-facing API

type StartRequest struct {
	SessionID string `json:"session_id,optional"`
}

type StartResponse struct {
	SessionID   string `json:"session_id"`
	Reply       string `json:"reply"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	Stage       string `json:"stage"`
}

type AcousticFeatures struct {
	PitchMean float64   `json:"pitch_mean"`
	Tempo     float64   `json:"tempo"`
	Timbre    []float64 `json:"timbre,optional"`
}

type ChatRequest struct {
	SessionID string            `json:"session_id"`
	Message   string            `json:"message"`
	Features  *AcousticFeatures `json:"features,optional"`
}

type ChatResponse struct {
	Reply       string `json:"reply"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	Stage       string `json:"stage"`
}

type ProcessAudioResponse struct {
	UserTranscript string            `json:"user_transcript"`
	Features       *AcousticFeatures `json:"features,omitempty"`
}

type EndRequest struct {
	SessionID string                      `json:"session_id"`
	Duration  string                      `json:"duration,optional"`
	Messages  []session.TranscriptMessage `json:"messages,optional"`
}

type EndResponse struct {
	Reply       string           `json:"reply"`
	AudioBase64 string           `json:"audio_base64,omitempty"`
	Summary     *session.Summary `json:"summary"`
}

// Health

type HealthResponse struct {
	Status    string `json:"status"`
	Providers int    `json:"providers"`
	Sessions  int    `json:"sessions"`
}

// Service discovery

type ProviderInfo struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Status       string            `json:"status"`
	Capabilities []string          `json:"capabilities,omitempty"`
	Config       map[string]string `json:"config,omitempty"`
}

type ServiceListResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    []ProviderInfo `json:"data"`
}

type ServiceStatusResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Data    ProviderInfo `json:"data,omitempty"`
}
