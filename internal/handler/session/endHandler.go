package session

import (
	"net/http"

	"github.com/mindwell-ai/mindwell/backend/internal/logic/session"
	"github.com/mindwell-ai/mindwell/backend/internal/svc"
	"github.com/mindwell-ai/mindwell/backend/internal/types"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func EndHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.EndRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := session.NewEndLogic(r.Context(), svcCtx)
		resp, err := l.End(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
