package handler

import (
	"net/http"

	"github.com/mindwell-ai/mindwell/backend/internal/handler/chat"
	"github.com/mindwell-ai/mindwell/backend/internal/handler/health"
	"github.com/mindwell-ai/mindwell/backend/internal/handler/history"
	"github.com/mindwell-ai/mindwell/backend/internal/handler/service"
	"github.com/mindwell-ai/mindwell/backend/internal/handler/session"
	"github.com/mindwell-ai/mindwell/backend/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/api/health",
				Handler: health.HealthHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/start",
				Handler: session.StartHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/chat",
				Handler: session.ChatHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/process-audio",
				Handler: session.ProcessAudioHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/end",
				Handler: session.EndHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/history",
				Handler: history.GetHistoryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/services",
				Handler: service.GetServicesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/services/:type",
				Handler: service.GetServicesByTypeHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/services/:type/:name/status",
				Handler: service.GetServiceStatusHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/chat/stream",
				Handler: chat.ChatStreamHandler(serverCtx),
			},
		},
	)
}
