// Package session owns one conversation end to end: the profile-collection
// stages, the active chat loop, the per-session history, and the summary
// written when the conversation ends.
package session

import (
	"sync"
	"time"
)

// Stage is the conversation stage. The wire values are consumed by the
// frontend as-is.
type Stage string

const (
	StageCollectName   Stage = "get_name"
	StageCollectAge    Stage = "get_age"
	StageCollectGender Stage = "get_gender"
	StageActive        Stage = "chatting"
	StageClosed        Stage = "closed"
)

// Profile holds the collected user details. Turn text is stored verbatim;
// validation is not this layer's job.
type Profile struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Gender string `json:"gender"`
}

// Exchange is one (user, assistant) turn pair.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Session is the live state of one conversation. All mutation goes through
// the per-session mutex so that concurrent turns for the same id serialize;
// turns for different sessions proceed independently.
type Session struct {
	mu sync.Mutex

	ID        string
	Stage     Stage
	Profile   Profile
	History   []Exchange
	CreatedAt time.Time
}

// TranscriptMessage is one client-side transcript entry, passed through to
// the summary as supplied.
type TranscriptMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Summary is the record persisted when a session ends; the only trace of a
// conversation that outlives it.
type Summary struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	UserInfo     Profile             `json:"user_info"`
	Summary      string              `json:"summary"`
	Timestamp    time.Time           `json:"timestamp"`
	MessageCount int                 `json:"messageCount"`
	Duration     string              `json:"duration"`
	Transcript   []TranscriptMessage `json:"transcript"`
}
