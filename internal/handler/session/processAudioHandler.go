package session

import (
	"io"
	"net/http"

	"github.com/mindwell-ai/mindwell/backend/internal/logic/session"
	"github.com/mindwell-ai/mindwell/backend/internal/svc"

	"github.com/zeromicro/go-zero/rest/httpx"
)

const maxAudioUpload = 16 << 20 // 16 MiB

func ProcessAudioHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		file, _, err := r.FormFile("audio_data")
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		defer file.Close()

		audio, err := io.ReadAll(file)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := session.NewProcessAudioLogic(r.Context(), svcCtx)
		resp, err := l.ProcessAudio(audio)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
