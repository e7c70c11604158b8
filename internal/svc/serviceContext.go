package svc

import (
	"os"

	"github.com/mindwell-ai/mindwell/backend/internal/config"
	"github.com/mindwell-ai/mindwell/backend/pkg/emotion"
	"github.com/mindwell-ai/mindwell/backend/pkg/memory"
	"github.com/mindwell-ai/mindwell/backend/pkg/provider"
	"github.com/mindwell-ai/mindwell/backend/pkg/session"
	"github.com/mindwell-ai/mindwell/backend/pkg/store"

	"github.com/zeromicro/go-zero/core/logx"
)

type ServiceContext struct {
	Config   config.Config
	Registry *provider.Registry
	Sessions *session.Manager
	Engine   *session.Engine
	Memory   *memory.Memory
	Store    *store.FileStore
}

func NewServiceContext(c config.Config) *ServiceContext {
	registry := provider.NewRegistry()

	// Register Gemini LLM Provider
	geminiAPIKey := c.Providers.Gemini.APIKey
	if geminiAPIKey == "" {
		geminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if geminiAPIKey != "" {
		geminiProvider := provider.NewGeminiLLMProvider(geminiAPIKey, c.Providers.Gemini.Model)
		registry.RegisterLLM("gemini", geminiProvider)
	}

	// Register Google Speech ASR Provider
	speechAPIKey := c.Providers.GoogleSpeech.APIKey
	if speechAPIKey == "" {
		speechAPIKey = os.Getenv("GOOGLE_SPEECH_API_KEY")
	}
	if speechAPIKey != "" {
		asrProvider := provider.NewGoogleASRProvider(speechAPIKey, c.Providers.GoogleSpeech.Language)
		registry.RegisterASR("google-speech", asrProvider)
	}

	// Register gTTS Provider (no credentials required)
	ttsProvider := provider.NewGTTSProvider(c.Providers.GTTS.Language)
	registry.RegisterTTS("gtts", ttsProvider)

	// Register feature extraction Provider
	extractorURL := c.Providers.Extractor.BaseURL
	if extractorURL == "" {
		extractorURL = os.Getenv("FEATURE_EXTRACTOR_URL")
	}
	if extractorURL != "" {
		featureProvider := provider.NewHTTPFeatureProvider(extractorURL)
		registry.RegisterFeature("http-extractor", featureProvider)
	}

	dataDir := c.Assistant.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	fileStore, err := store.NewFileStore(dataDir)
	if err != nil {
		logx.Must(err)
	}

	mem, err := memory.New(fileStore)
	if err != nil {
		logx.Must(err)
	}

	classifier := emotion.LoadClassifier(c.Assistant.ModelArtifact)

	var backend session.Backend
	if llm, err := registry.GetLLM("gemini"); err == nil {
		backend = llm
	}

	return &ServiceContext{
		Config:   c,
		Registry: registry,
		Sessions: session.NewManager(),
		Engine:   session.NewEngine(backend, classifier, mem),
		Memory:   mem,
		Store:    fileStore,
	}
}
