package session

import (
	"context"

	"github.com/mindwell-ai/mindwell/backend/internal/svc"
	"github.com/mindwell-ai/mindwell/backend/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type EndLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewEndLogic(ctx context.Context, svcCtx *svc.ServiceContext) *EndLogic {
	return &EndLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// End closes the session, persists its summary and removes it from the live
// set. A persistence failure surfaces to the caller and the session is not
// removed; it is already closed and rejects further turns either way.
func (l *EndLogic) End(req *types.EndRequest) (resp *types.EndResponse, err error) {
	s, err := l.svcCtx.Sessions.Get(req.SessionID)
	if err != nil {
		return nil, err
	}

	summary, reply := l.svcCtx.Engine.End(s, req.Duration, req.Messages)

	if err := l.svcCtx.Store.AppendSummary(summary); err != nil {
		l.Errorf("failed to persist summary for session %s: %v", req.SessionID, err)
		return nil, err
	}
	l.svcCtx.Sessions.Remove(req.SessionID)
	l.Infof("session %s ended, summary %s saved", req.SessionID, summary.ID)

	audio, err := synthesizeReply(l.ctx, l.svcCtx, reply)
	if err != nil {
		return nil, err
	}

	return &types.EndResponse{
		Reply:       reply,
		AudioBase64: audio,
		Summary:     summary,
	}, nil
}
