package session

import (
	"context"

	"github.com/mindwell-ai/mindwell/backend/internal/svc"
	"github.com/mindwell-ai/mindwell/backend/internal/types"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

const initialPrompt = "Hello! I'm your AI health assistant. Before we begin, could you please tell me your name?"

type StartLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStartLogic(ctx context.Context, svcCtx *svc.ServiceContext) *StartLogic {
	return &StartLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Start creates a fresh session at the name-collection stage. A caller that
// reuses an id resets that conversation.
func (l *StartLogic) Start(req *types.StartRequest) (resp *types.StartResponse, err error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s := l.svcCtx.Sessions.Start(sessionID)
	l.Infof("session %s started", sessionID)

	audio, err := synthesizeReply(l.ctx, l.svcCtx, initialPrompt)
	if err != nil {
		return nil, err
	}

	return &types.StartResponse{
		SessionID:   sessionID,
		Reply:       initialPrompt,
		AudioBase64: audio,
		Stage:       string(s.Stage),
	}, nil
}
