package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mindwell-ai/mindwell/backend/pkg/emotion"
	"github.com/mindwell-ai/mindwell/backend/pkg/memory"
)

// Backend is the generative dialogue collaborator: one blocking text
// completion per turn, no streaming, no retries here. Callers impose the
// timeout through ctx.
type Backend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Engine drives sessions through their stages. It is stateless apart from its
// collaborators; all per-conversation state lives on the Session, guarded by
// the session's own mutex.
type Engine struct {
	backend    Backend
	classifier *emotion.Classifier
	memory     *memory.Memory
}

func NewEngine(backend Backend, classifier *emotion.Classifier, mem *memory.Memory) *Engine {
	return &Engine{backend: backend, classifier: classifier, memory: mem}
}

// Turn feeds one user turn to s and returns the assistant reply. During the
// profile stages the text is stored verbatim and a scripted prompt comes
// back; in the chatting stage the full emotion-annotated context goes to the
// dialogue backend. A backend or persistence failure is fatal to this turn
// only, never to the session.
func (e *Engine) Turn(ctx context.Context, s *Session, text string, features *emotion.AcousticFeatures) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.Stage {
	case StageCollectName:
		s.Profile.Name = text
		s.Stage = StageCollectAge
		return fmt.Sprintf("Thank you, %s. Now, could you please tell me your age?", text), nil

	case StageCollectAge:
		s.Profile.Age = text
		s.Stage = StageCollectGender
		return "Got it. And your gender?", nil

	case StageCollectGender:
		s.Profile.Gender = text
		s.Stage = StageActive
		return fmt.Sprintf("Thank you, %s. All set up. How can I help you today?", s.Profile.Name), nil

	case StageActive:
		return e.activeTurn(ctx, s, text, features)

	default:
		return "", ErrInvalidSession
	}
}

// activeTurn is the chatting-stage loop: classify, combine, build the
// context, ask the backend, then log the exchange and the learning memory
// entry. Side effects happen in that order and only after the backend
// answered.
func (e *Engine) activeTurn(ctx context.Context, s *Session, text string, features *emotion.AcousticFeatures) (string, error) {
	if e.backend == nil {
		return "", errors.New("dialogue backend not configured")
	}

	lexical := emotion.Lexical(text)

	var acoustic *emotion.Estimate
	if features != nil {
		est := emotion.Acoustic(features.PitchMean, features.Tempo)
		acoustic = &est
	}

	combined := emotion.Combine(lexical, acoustic)
	statistical := e.classifier.Predict(text)
	hint := e.memory.Refine(text)

	prompt := e.buildContext(s, text, lexical, acoustic, combined, statistical, hint)

	reply, err := e.backend.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(strings.ReplaceAll(reply, "*", ""))

	s.History = append(s.History, Exchange{User: text, Assistant: reply})

	if err := e.memory.Record(text, reply); err != nil {
		return "", fmt.Errorf("record learning memory: %w", err)
	}
	return reply, nil
}

// buildContext assembles the single prompt string fed to the backend: base
// instruction, per-signal emotion annotations, the refinement hint when the
// query has been seen before, the full ordered history, and the new turn.
func (e *Engine) buildContext(s *Session, text string, lexical emotion.Estimate, acoustic *emotion.Estimate, combined, statistical emotion.Estimate, hint string) string {
	var b strings.Builder

	b.WriteString(basePrompt(s.Profile))
	b.WriteString("\n")
	fmt.Fprintf(&b, "User emotional state (text analysis): '%s'. ", lexical.Label)
	if acoustic != nil {
		fmt.Fprintf(&b, "Based on voice, detected emotion: '%s'. ", acoustic.Label)
	}
	fmt.Fprintf(&b, "Combined analysis suggests: '%s'. ", combined.Label)
	fmt.Fprintf(&b, "ML-detected emotion: '%s'. ", statistical.Label)
	if hint != "" {
		fmt.Fprintf(&b, "\nRefined from past responses to this question: %s", hint)
	}
	b.WriteString("\n")
	for _, ex := range s.History {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", ex.User, ex.Assistant)
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", text)

	return b.String()
}

// End closes s, builds its summary record from the profile, history and the
// caller-supplied duration and transcript, and returns the goodbye reply.
// The caller persists the summary and drops the session from the live set.
func (e *Engine) End(s *Session, duration string, transcript []TranscriptMessage) (*Summary, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.Profile.Name
	if name == "" {
		name = "User"
	}

	summary := &Summary{
		ID:           fmt.Sprintf("conv_%d", time.Now().Unix()),
		Title:        fmt.Sprintf("Conversation with %s", name),
		UserInfo:     s.Profile,
		Summary:      fmt.Sprintf("A conversation was held covering %d topics.", len(s.History)),
		Timestamp:    time.Now(),
		MessageCount: len(transcript),
		Duration:     duration,
		Transcript:   transcript,
	}
	s.Stage = StageClosed

	reply := fmt.Sprintf("Thank you for sharing, %s. Your conversation has been saved. Have a great day!", name)
	return summary, reply
}

// basePrompt is the assistant persona instruction, parameterized with the
// collected profile.
func basePrompt(p Profile) string {
	return fmt.Sprintf(
		"You are an expert in mental health assistance and you should act accordingly to psychiatrists. "+
			"Your patient name is %s, age is %s, gender is %s. "+
			"Your job is to diagnose, treat, and prevent mental illness, provide calming techniques, mental health tips, "+
			"and address emotional behaviour and different behavioral disorders with sentiment-based responses and engage empathetically. "+
			"Give answers in short and according to the question asked only. "+
			"Always ask a follow-up question to encourage conversation. "+
			"Remember previous responses and act professionally. "+
			"Incorporate questions about daily routines, sleeping patterns, diet, stress, anxiety and other aspects of "+
			"mental health and emotional well-being when required to provide holistic advice. "+
			"If you sense any negative emotions, provide appropriate advice and encourage conversation.",
		p.Name, p.Age, p.Gender)
}
