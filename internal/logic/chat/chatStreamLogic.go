package chat

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mindwell-ai/mindwell/backend/internal/svc"
	"github.com/mindwell-ai/mindwell/backend/pkg/emotion"
	"github.com/mindwell-ai/mindwell/backend/pkg/provider"
	"github.com/mindwell-ai/mindwell/backend/pkg/session"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zeromicro/go-zero/core/logx"
)

const (
	MessageTypeStart     = "start"
	MessageTypeText      = "text"
	MessageTypeAudio     = "audio"
	MessageTypeEnd       = "end"
	MessageTypeStarted   = "started"
	MessageTypeASRResult = "asr_result"
	MessageTypeResponse  = "response"
	MessageTypeTTS       = "tts"
	MessageTypeSummary   = "summary"
	MessageTypeError     = "error"
)

// ChatStreamLogic drives one websocket conversation. Frames are handled
// sequentially in the read loop; that sequencing is what serializes turns
// for the session bound to this connection.
type ChatStreamLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
	// WebSocket write mutex - one per connection
	wsWriteMutex sync.Mutex
	// audio sequence number for TTS frames
	ttsSequence int32
	// session bound to this connection after a start frame
	sessionID string
}

func NewChatStreamLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatStreamLogic {
	return &ChatStreamLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// WSMessage is the websocket frame envelope.
type WSMessage struct {
	Type      string      `json:"type"`
	Content   interface{} `json:"content,omitempty"`
	Timestamp int64       `json:"timestamp,omitempty"`
}

type startContent struct {
	SessionID string `json:"session_id"`
}

type textContent struct {
	Content string `json:"content"`
}

type audioContent struct {
	AudioData string `json:"audio_data"` // base64
}

type endContent struct {
	Duration string                      `json:"duration"`
	Messages []session.TranscriptMessage `json:"messages"`
}

func (l *ChatStreamLogic) HandleWebSocket(conn *websocket.Conn) {
	defer conn.Close()

	l.sendMessage(conn, &WSMessage{
		Type:      "welcome",
		Content:   "WebSocket connection established. Send start to begin.",
		Timestamp: time.Now().Unix(),
	})

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logx.Errorf("WebSocket error: %v", err)
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			var msg WSMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				l.sendError(conn, 400, "Invalid JSON message: "+err.Error())
				continue
			}
			l.handleFrame(&msg, conn)

		case websocket.BinaryMessage:
			// raw audio sample
			l.handleAudio(data, conn)

		default:
			l.sendError(conn, 400, "Unsupported message type")
		}
	}
}

func (l *ChatStreamLogic) handleFrame(msg *WSMessage, conn *websocket.Conn) {
	switch msg.Type {
	case MessageTypeStart:
		var content startContent
		decodeContent(msg.Content, &content)
		l.handleStart(content.SessionID, conn)

	case MessageTypeText:
		var content textContent
		decodeContent(msg.Content, &content)
		if content.Content == "" {
			l.sendError(conn, 400, "Empty text content")
			return
		}
		l.handleTurn(content.Content, nil, conn)

	case MessageTypeAudio:
		var content audioContent
		decodeContent(msg.Content, &content)
		audio, err := base64.StdEncoding.DecodeString(content.AudioData)
		if err != nil {
			l.sendError(conn, 400, "Failed to decode audio data: "+err.Error())
			return
		}
		l.handleAudio(audio, conn)

	case MessageTypeEnd:
		var content endContent
		decodeContent(msg.Content, &content)
		l.handleEnd(content.Duration, content.Messages, conn)

	default:
		l.sendError(conn, 400, "Unknown message type: "+msg.Type)
	}
}

// handleStart binds a session to this connection, creating one if the client
// did not supply an id.
func (l *ChatStreamLogic) handleStart(sessionID string, conn *websocket.Conn) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s := l.svcCtx.Sessions.Start(sessionID)
	l.sessionID = sessionID
	l.Infof("stream session %s started", sessionID)

	reply := "Hello! I'm your AI health assistant. Before we begin, could you please tell me your name?"
	l.sendMessage(conn, &WSMessage{
		Type: MessageTypeStarted,
		Content: map[string]interface{}{
			"session_id": sessionID,
			"reply":      reply,
			"stage":      string(s.Stage),
		},
		Timestamp: time.Now().Unix(),
	})
	l.sendTTS(reply, conn)
}

// handleAudio runs the voice path for one turn: ASR, optional feature
// extraction, then the same turn processing a text frame gets.
func (l *ChatStreamLogic) handleAudio(audio []byte, conn *websocket.Conn) {
	if len(audio) == 0 {
		l.sendError(conn, 400, "Empty audio data")
		return
	}

	asr, err := l.svcCtx.Registry.GetASR("google-speech")
	if err != nil {
		l.sendError(conn, 500, "ASR provider not available: "+err.Error())
		return
	}

	logx.Infof("Processing audio: %d bytes", len(audio))
	text, err := asr.Transcribe(l.ctx, audio)
	if err != nil {
		if errors.Is(err, provider.ErrUnrecognized) {
			l.sendError(conn, 400, "No text recognized from audio")
		} else {
			l.sendError(conn, 500, "ASR failed: "+err.Error())
		}
		return
	}

	l.sendMessage(conn, &WSMessage{
		Type:      MessageTypeASRResult,
		Content:   map[string]interface{}{"text": text},
		Timestamp: time.Now().Unix(),
	})

	var features *emotion.AcousticFeatures
	if extractor, err := l.svcCtx.Registry.GetFeature("http-extractor"); err == nil {
		features, err = extractor.Extract(l.ctx, audio)
		if err != nil {
			logx.Errorf("feature extraction failed: %v", err)
			features = nil
		}
	}

	l.handleTurn(text, features, conn)
}

// handleTurn feeds one turn to the session engine and streams back the reply
// and its audio.
func (l *ChatStreamLogic) handleTurn(text string, features *emotion.AcousticFeatures, conn *websocket.Conn) {
	s, err := l.boundSession()
	if err != nil {
		l.sendError(conn, 400, err.Error())
		return
	}

	reply, err := l.svcCtx.Engine.Turn(l.ctx, s, text, features)
	if err != nil {
		logx.Errorf("turn failed for session %s: %v", l.sessionID, err)
		l.sendError(conn, 500, err.Error())
		return
	}

	l.sendMessage(conn, &WSMessage{
		Type: MessageTypeResponse,
		Content: map[string]interface{}{
			"text":  reply,
			"stage": string(s.Stage),
		},
		Timestamp: time.Now().Unix(),
	})
	l.sendTTS(reply, conn)
}

// handleEnd closes the bound session, persists its summary and reports it.
func (l *ChatStreamLogic) handleEnd(duration string, messages []session.TranscriptMessage, conn *websocket.Conn) {
	s, err := l.boundSession()
	if err != nil {
		l.sendError(conn, 400, err.Error())
		return
	}

	summary, reply := l.svcCtx.Engine.End(s, duration, messages)
	if err := l.svcCtx.Store.AppendSummary(summary); err != nil {
		logx.Errorf("failed to persist summary for session %s: %v", l.sessionID, err)
		l.sendError(conn, 500, err.Error())
		return
	}
	l.svcCtx.Sessions.Remove(l.sessionID)
	l.sessionID = ""

	l.sendMessage(conn, &WSMessage{
		Type: MessageTypeSummary,
		Content: map[string]interface{}{
			"reply":   reply,
			"summary": summary,
		},
		Timestamp: time.Now().Unix(),
	})
	l.sendTTS(reply, conn)
}

// sendTTS synthesizes reply audio and ships it as one sequenced frame. No
// TTS provider means text-only frames, not an error.
func (l *ChatStreamLogic) sendTTS(text string, conn *websocket.Conn) {
	tts, err := l.svcCtx.Registry.GetTTS("gtts")
	if err != nil {
		return
	}

	audio, err := tts.Synthesize(l.ctx, text)
	if err != nil {
		logx.Errorf("TTS failed: %v", err)
		return
	}

	seqNumber := atomic.AddInt32(&l.ttsSequence, 1)
	logx.Infof("Sending TTS audio: %d bytes, seq: %d", len(audio), seqNumber)

	l.sendMessage(conn, &WSMessage{
		Type: MessageTypeTTS,
		Content: map[string]interface{}{
			"audio":    base64.StdEncoding.EncodeToString(audio),
			"format":   "mp3",
			"sequence": seqNumber,
			"text":     text,
		},
		Timestamp: time.Now().Unix(),
	})
}

func (l *ChatStreamLogic) boundSession() (*session.Session, error) {
	if l.sessionID == "" {
		return nil, session.ErrInvalidSession
	}
	return l.svcCtx.Sessions.Get(l.sessionID)
}

// decodeContent re-marshals a frame's loosely-typed content into dst.
func decodeContent(content interface{}, dst interface{}) {
	data, err := json.Marshal(content)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, dst)
}

func (l *ChatStreamLogic) sendMessage(conn *websocket.Conn, msg *WSMessage) {
	l.wsWriteMutex.Lock()
	defer l.wsWriteMutex.Unlock()

	if err := conn.WriteJSON(msg); err != nil {
		logx.Errorf("Failed to send WebSocket message: %v", err)
	}
}

func (l *ChatStreamLogic) sendError(conn *websocket.Conn, code int, message string) {
	l.sendMessage(conn, &WSMessage{
		Type: MessageTypeError,
		Content: map[string]interface{}{
			"code":    code,
			"message": message,
		},
		Timestamp: time.Now().Unix(),
	})
}
