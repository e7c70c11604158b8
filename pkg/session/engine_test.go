package session

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindwell-ai/mindwell/backend/pkg/emotion"
	"github.com/mindwell-ai/mindwell/backend/pkg/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeBackend) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type mapStore struct {
	entries map[string][]string
}

func (s *mapStore) GetMemory() (map[string][]string, error) { return s.entries, nil }
func (s *mapStore) PutMemory(entries map[string][]string) error {
	s.entries = entries
	return nil
}

func newTestEngine(t *testing.T, backend Backend) *Engine {
	t.Helper()
	mem, err := memory.New(&mapStore{})
	require.NoError(t, err)
	// no artifact on disk: the statistical classifier runs degraded
	classifier := emotion.LoadClassifier(filepath.Join(t.TempDir(), "missing.json"))
	return NewEngine(backend, classifier, mem)
}

func collectProfile(t *testing.T, e *Engine, s *Session) {
	t.Helper()
	ctx := context.Background()
	for _, text := range []string{"Alex", "29", "female"} {
		_, err := e.Turn(ctx, s, text, nil)
		require.NoError(t, err)
	}
	require.Equal(t, StageActive, s.Stage)
}

func TestProfileCollectionScenario(t *testing.T) {
	backend := &fakeBackend{reply: "hello"}
	e := newTestEngine(t, backend)
	s := NewManager().Start("s1")
	ctx := context.Background()

	assert.Equal(t, StageCollectName, s.Stage)

	reply, err := e.Turn(ctx, s, "Alex", nil)
	require.NoError(t, err)
	assert.Equal(t, StageCollectAge, s.Stage)
	assert.Equal(t, "Alex", s.Profile.Name)
	assert.Contains(t, reply, "Alex")

	_, err = e.Turn(ctx, s, "29", nil)
	require.NoError(t, err)
	assert.Equal(t, StageCollectGender, s.Stage)
	assert.Equal(t, "29", s.Profile.Age)

	reply, err = e.Turn(ctx, s, "female", nil)
	require.NoError(t, err)
	assert.Equal(t, StageActive, s.Stage)
	assert.Equal(t, "female", s.Profile.Gender)
	assert.Contains(t, reply, "Alex")

	// the backend is never consulted during profile collection
	assert.Empty(t, backend.prompts)
}

func TestProfileStoredVerbatim(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{reply: "ok"})
	s := NewManager().Start("s1")
	ctx := context.Background()

	_, err := e.Turn(ctx, s, "  Dr. Alex Jones III ", nil)
	require.NoError(t, err)
	_, err = e.Turn(ctx, s, "twenty-nine", nil)
	require.NoError(t, err)
	_, err = e.Turn(ctx, s, "prefer not to say", nil)
	require.NoError(t, err)

	assert.Equal(t, "  Dr. Alex Jones III ", s.Profile.Name)
	assert.Equal(t, "twenty-nine", s.Profile.Age)
	assert.Equal(t, "prefer not to say", s.Profile.Gender)
}

func TestActiveTurnTextOnly(t *testing.T) {
	backend := &fakeBackend{reply: "That's wonderful to hear!"}
	e := newTestEngine(t, backend)
	s := NewManager().Start("s1")
	collectProfile(t, e, s)

	reply, err := e.Turn(context.Background(), s, "I feel great today", nil)
	require.NoError(t, err)
	assert.Equal(t, "That's wonderful to hear!", reply)

	require.Len(t, backend.prompts, 1)
	prompt := backend.prompts[0]
	assert.Contains(t, prompt, "Your patient name is Alex, age is 29, gender is female.")
	assert.Contains(t, prompt, "User emotional state (text analysis): 'happy'.")
	assert.Contains(t, prompt, "Combined analysis suggests: 'happy'.")
	assert.Contains(t, prompt, "ML-detected emotion: 'unknown'.")
	assert.NotContains(t, prompt, "Based on voice")
	assert.True(t, strings.HasSuffix(prompt, "User: I feel great today\nAssistant:"))

	require.Len(t, s.History, 1)
	assert.Equal(t, "I feel great today", s.History[0].User)
	assert.Equal(t, "That's wonderful to hear!", s.History[0].Assistant)
}

func TestActiveTurnAgreeingSignals(t *testing.T) {
	backend := &fakeBackend{reply: "I'm sorry you're feeling low."}
	e := newTestEngine(t, backend)
	s := NewManager().Start("s1")
	collectProfile(t, e, s)

	// (150, 100) lands in the sad/male_adults window; the text reads sad too.
	features := &emotion.AcousticFeatures{PitchMean: 150, Tempo: 100}
	_, err := e.Turn(context.Background(), s, "I feel so down today", features)
	require.NoError(t, err)

	prompt := backend.prompts[0]
	assert.Contains(t, prompt, "Based on voice, detected emotion: 'sad'.")
	assert.Contains(t, prompt, "Combined analysis suggests: 'sad'.")
}

func TestActiveTurnMixedSignals(t *testing.T) {
	backend := &fakeBackend{reply: "Tell me more."}
	e := newTestEngine(t, backend)
	s := NewManager().Start("s1")
	collectProfile(t, e, s)

	// (400, 210) lands in the angry/children window while the text reads happy.
	features := &emotion.AcousticFeatures{PitchMean: 400, Tempo: 210}
	_, err := e.Turn(context.Background(), s, "I feel great", features)
	require.NoError(t, err)

	prompt := backend.prompts[0]
	assert.Contains(t, prompt, "Based on voice, detected emotion: 'angry'.")
	assert.Contains(t, prompt, "Combined analysis suggests: 'Mixed (happy and angry)'.")
}

func TestActiveTurnCarriesHistoryAndHint(t *testing.T) {
	backend := &fakeBackend{reply: "Try a short walk."}
	e := newTestEngine(t, backend)
	s := NewManager().Start("s1")
	collectProfile(t, e, s)
	ctx := context.Background()

	_, err := e.Turn(ctx, s, "how do I relax", nil)
	require.NoError(t, err)

	backend.reply = "Breathing exercises help."
	_, err = e.Turn(ctx, s, "how do I relax", nil)
	require.NoError(t, err)

	prompt := backend.prompts[1]
	// the repeat query picks up the cached hint and the prior exchange
	assert.Contains(t, prompt, "Refined from past responses to this question: Try a short walk.")
	assert.Contains(t, prompt, "User: how do I relax\nAssistant: Try a short walk.\n")
	assert.True(t, strings.HasSuffix(prompt, "User: how do I relax\nAssistant:"))

	require.Len(t, s.History, 2)
}

func TestActiveTurnStripsAsterisks(t *testing.T) {
	backend := &fakeBackend{reply: "  **Deep breaths** help *a lot*.  "}
	e := newTestEngine(t, backend)
	s := NewManager().Start("s1")
	collectProfile(t, e, s)

	reply, err := e.Turn(context.Background(), s, "help me", nil)
	require.NoError(t, err)
	assert.Equal(t, "Deep breaths help a lot.", reply)
}

func TestBackendFailureIsTurnFatalOnly(t *testing.T) {
	backend := &fakeBackend{err: errors.New("backend down")}
	e := newTestEngine(t, backend)
	s := NewManager().Start("s1")
	collectProfile(t, e, s)

	_, err := e.Turn(context.Background(), s, "hello there", nil)
	require.Error(t, err)

	// failed turn leaves no trace and the session stays usable
	assert.Empty(t, s.History)
	assert.Equal(t, StageActive, s.Stage)

	backend.err = nil
	backend.reply = "back again"
	reply, err := e.Turn(context.Background(), s, "hello there", nil)
	require.NoError(t, err)
	assert.Equal(t, "back again", reply)
}

func TestClosedSessionRejectsTurns(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{reply: "ok"})
	s := NewManager().Start("s1")
	collectProfile(t, e, s)

	_, _ = e.End(s, "1m", nil)

	_, err := e.Turn(context.Background(), s, "are you there", nil)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestEndBuildsSummary(t *testing.T) {
	backend := &fakeBackend{reply: "noted"}
	e := newTestEngine(t, backend)
	s := NewManager().Start("s1")
	collectProfile(t, e, s)

	_, err := e.Turn(context.Background(), s, "I feel fine", nil)
	require.NoError(t, err)

	transcript := []TranscriptMessage{
		{Sender: "user", Text: "I feel fine"},
		{Sender: "assistant", Text: "noted"},
	}
	summary, reply := e.End(s, "2m30s", transcript)

	assert.Equal(t, StageClosed, s.Stage)
	assert.Contains(t, reply, "Alex")
	assert.True(t, strings.HasPrefix(summary.ID, "conv_"))
	assert.Equal(t, "Conversation with Alex", summary.Title)
	assert.Equal(t, Profile{Name: "Alex", Age: "29", Gender: "female"}, summary.UserInfo)
	assert.Equal(t, "A conversation was held covering 1 topics.", summary.Summary)
	assert.Equal(t, 2, summary.MessageCount)
	assert.Equal(t, "2m30s", summary.Duration)
	assert.Equal(t, transcript, summary.Transcript)
	assert.False(t, summary.Timestamp.IsZero())
}

func TestEndWithEmptyProfileFallsBackToUser(t *testing.T) {
	e := newTestEngine(t, &fakeBackend{})
	s := NewManager().Start("s1")

	summary, reply := e.End(s, "", nil)
	assert.Equal(t, "Conversation with User", summary.Title)
	assert.Contains(t, reply, "User")
}
