package config

import "github.com/zeromicro/go-zero/rest"

type Config struct {
	rest.RestConf

	// Provider configuration
	Providers ProviderConfig `json:"providers,omitempty"`

	// Assistant data and model artifacts
	Assistant AssistantConfig `json:"assistant,omitempty"`
}

type ProviderConfig struct {
	// LLM Provider configuration
	Gemini GeminiConfig `json:"gemini,omitempty"`

	// ASR/TTS Provider configuration
	GoogleSpeech GoogleSpeechConfig `json:"googleSpeech,omitempty"`
	GTTS         GTTSConfig         `json:"gtts,omitempty"`

	// Acoustic feature extraction service
	Extractor ExtractorConfig `json:"extractor,omitempty"`
}

type GeminiConfig struct {
	APIKey string `json:"apiKey,omitempty"`
	Model  string `json:"model,omitempty"`
}

type GoogleSpeechConfig struct {
	APIKey   string `json:"apiKey,omitempty"`
	Language string `json:"language,omitempty"`
}

type GTTSConfig struct {
	Language string `json:"language,omitempty"`
}

type ExtractorConfig struct {
	BaseURL string `json:"baseUrl,omitempty"`
}

type AssistantConfig struct {
	DataDir       string `json:"dataDir,omitempty"`       // conversations.json + learning_memory.json
	ModelArtifact string `json:"modelArtifact,omitempty"` // emotion classifier artifact
}
