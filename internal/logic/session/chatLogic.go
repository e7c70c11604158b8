package session

import (
	"context"
	"encoding/base64"

	"github.com/mindwell-ai/mindwell/backend/internal/svc"
	"github.com/mindwell-ai/mindwell/backend/internal/types"
	"github.com/mindwell-ai/mindwell/backend/pkg/emotion"

	"github.com/zeromicro/go-zero/core/logx"
)

type ChatLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewChatLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ChatLogic {
	return &ChatLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Chat feeds one turn to the session engine. Acoustic features are optional;
// clients that went through /api/process-audio attach them here.
func (l *ChatLogic) Chat(req *types.ChatRequest) (resp *types.ChatResponse, err error) {
	s, err := l.svcCtx.Sessions.Get(req.SessionID)
	if err != nil {
		return nil, err
	}

	var features *emotion.AcousticFeatures
	if req.Features != nil {
		features = &emotion.AcousticFeatures{
			PitchMean: req.Features.PitchMean,
			Tempo:     req.Features.Tempo,
			Timbre:    req.Features.Timbre,
		}
	}

	reply, err := l.svcCtx.Engine.Turn(l.ctx, s, req.Message, features)
	if err != nil {
		l.Errorf("turn failed for session %s: %v", req.SessionID, err)
		return nil, err
	}

	audio, err := synthesizeReply(l.ctx, l.svcCtx, reply)
	if err != nil {
		return nil, err
	}

	return &types.ChatResponse{
		Reply:       reply,
		AudioBase64: audio,
		Stage:       string(s.Stage),
	}, nil
}

// synthesizeReply returns base64 mp3 for text, or "" when no TTS provider is
// configured. A failure from a configured provider is fatal to the turn.
func synthesizeReply(ctx context.Context, svcCtx *svc.ServiceContext, text string) (string, error) {
	tts, err := svcCtx.Registry.GetTTS("gtts")
	if err != nil {
		return "", nil
	}
	audio, err := tts.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(audio), nil
}
