package chat

import (
	"net/http"

	"github.com/mindwell-ai/mindwell/backend/internal/logic/chat"
	"github.com/mindwell-ai/mindwell/backend/internal/svc"

	"github.com/gorilla/websocket"
	"github.com/zeromicro/go-zero/core/logx"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow cross-origin connections; tighten this for production.
		return true
	},
}

func ChatStreamHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Errorf("WebSocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		l := chat.NewChatStreamLogic(r.Context(), svcCtx)
		l.HandleWebSocket(conn)
	}
}
