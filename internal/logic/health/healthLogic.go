package health

import (
	"context"

	"github.com/mindwell-ai/mindwell/backend/internal/svc"
	"github.com/mindwell-ai/mindwell/backend/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HealthLogic) Health() (resp *types.HealthResponse, err error) {
	return &types.HealthResponse{
		Status:    "ok",
		Providers: len(l.svcCtx.Registry.GetAllProviders()),
		Sessions:  l.svcCtx.Sessions.Count(),
	}, nil
}
