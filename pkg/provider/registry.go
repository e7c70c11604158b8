package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindwell-ai/mindwell/backend/pkg/emotion"
)

// Collaborator failure taxonomy. Providers wrap these so callers can branch
// without knowing the vendor.
var (
	// ErrBackendUnavailable marks a dialogue backend failure; fatal to the
	// turn that triggered it, not to the session.
	ErrBackendUnavailable = errors.New("dialogue backend unavailable")
	// ErrUnrecognized marks audio the ASR service could not turn into text.
	ErrUnrecognized = errors.New("could not understand the audio")
	// ErrService marks a transport or service-side recognition failure.
	ErrService = errors.New("speech service error")
)

// Registry manages all providers with unified interfaces.
type Registry struct {
	llmProviders     map[string]LLMProvider
	asrProviders     map[string]ASRProvider
	ttsProviders     map[string]TTSProvider
	featureProviders map[string]FeatureProvider
}

func NewRegistry() *Registry {
	return &Registry{
		llmProviders:     make(map[string]LLMProvider),
		asrProviders:     make(map[string]ASRProvider),
		ttsProviders:     make(map[string]TTSProvider),
		featureProviders: make(map[string]FeatureProvider),
	}
}

// LLMProvider is the dialogue backend: one blocking completion per call.
type LLMProvider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// ASRProvider transcribes a complete audio sample.
type ASRProvider interface {
	Name() string
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// TTSProvider synthesizes speech for a complete reply.
type TTSProvider interface {
	Name() string
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// FeatureProvider extracts acoustic features from an audio sample.
// Extraction is deterministic for identical input.
type FeatureProvider interface {
	Name() string
	Extract(ctx context.Context, audio []byte) (*emotion.AcousticFeatures, error)
}

// Registry methods
func (r *Registry) RegisterLLM(name string, provider LLMProvider) {
	r.llmProviders[name] = provider
}

func (r *Registry) RegisterASR(name string, provider ASRProvider) {
	r.asrProviders[name] = provider
}

func (r *Registry) RegisterTTS(name string, provider TTSProvider) {
	r.ttsProviders[name] = provider
}

func (r *Registry) RegisterFeature(name string, provider FeatureProvider) {
	r.featureProviders[name] = provider
}

func (r *Registry) GetLLM(name string) (LLMProvider, error) {
	if provider, ok := r.llmProviders[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("LLM provider '%s' not found", name)
}

func (r *Registry) GetASR(name string) (ASRProvider, error) {
	if provider, ok := r.asrProviders[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("ASR provider '%s' not found", name)
}

func (r *Registry) GetTTS(name string) (TTSProvider, error) {
	if provider, ok := r.ttsProviders[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("TTS provider '%s' not found", name)
}

func (r *Registry) GetFeature(name string) (FeatureProvider, error) {
	if provider, ok := r.featureProviders[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("feature provider '%s' not found", name)
}

// ProviderInfo describes one registered provider for service discovery.
type ProviderInfo struct {
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Status       string            `json:"status"`
	Capabilities []string          `json:"capabilities,omitempty"`
	Config       map[string]string `json:"config,omitempty"`
}

var capabilitiesByType = map[string][]string{
	"llm":     {"complete"},
	"asr":     {"transcribe"},
	"tts":     {"synthesize"},
	"feature": {"extract"},
}

func info(name, providerType string) ProviderInfo {
	return ProviderInfo{
		Name:         name,
		Type:         providerType,
		Status:       "online",
		Capabilities: capabilitiesByType[providerType],
	}
}

// GetAllProviders lists every registered provider.
func (r *Registry) GetAllProviders() []ProviderInfo {
	var providers []ProviderInfo
	for name := range r.llmProviders {
		providers = append(providers, info(name, "llm"))
	}
	for name := range r.asrProviders {
		providers = append(providers, info(name, "asr"))
	}
	for name := range r.ttsProviders {
		providers = append(providers, info(name, "tts"))
	}
	for name := range r.featureProviders {
		providers = append(providers, info(name, "feature"))
	}
	return providers
}

// GetProvidersByType lists registered providers of one kind.
func (r *Registry) GetProvidersByType(providerType string) []ProviderInfo {
	var providers []ProviderInfo
	switch providerType {
	case "llm":
		for name := range r.llmProviders {
			providers = append(providers, info(name, "llm"))
		}
	case "asr":
		for name := range r.asrProviders {
			providers = append(providers, info(name, "asr"))
		}
	case "tts":
		for name := range r.ttsProviders {
			providers = append(providers, info(name, "tts"))
		}
	case "feature":
		for name := range r.featureProviders {
			providers = append(providers, info(name, "feature"))
		}
	}
	return providers
}

// GetProviderInfo looks up a single provider by type and name.
func (r *Registry) GetProviderInfo(providerType, name string) (*ProviderInfo, error) {
	var ok bool
	switch providerType {
	case "llm":
		_, ok = r.llmProviders[name]
	case "asr":
		_, ok = r.asrProviders[name]
	case "tts":
		_, ok = r.ttsProviders[name]
	case "feature":
		_, ok = r.featureProviders[name]
	}
	if !ok {
		return nil, fmt.Errorf("provider '%s' of type '%s' not found", name, providerType)
	}
	pi := info(name, providerType)
	return &pi, nil
}
