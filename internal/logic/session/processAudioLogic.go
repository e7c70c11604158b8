package session

import (
	"context"

	"github.com/mindwell-ai/mindwell/backend/internal/svc"
	"github.com/mindwell-ai/mindwell/backend/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type ProcessAudioLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewProcessAudioLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ProcessAudioLogic {
	return &ProcessAudioLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ProcessAudio transcribes an uploaded sample and extracts its acoustic
// features. It touches no session; the client attaches the result to its
// next /api/chat turn.
func (l *ProcessAudioLogic) ProcessAudio(audio []byte) (resp *types.ProcessAudioResponse, err error) {
	asr, err := l.svcCtx.Registry.GetASR("google-speech")
	if err != nil {
		return nil, err
	}

	transcript, err := asr.Transcribe(l.ctx, audio)
	if err != nil {
		return nil, err
	}
	l.Infof("transcribed %d bytes: '%s'", len(audio), transcript)

	var features *types.AcousticFeatures
	if extractor, err := l.svcCtx.Registry.GetFeature("http-extractor"); err == nil {
		extracted, err := extractor.Extract(l.ctx, audio)
		if err != nil {
			// Features only enrich the next turn; the transcript stands alone.
			l.Errorf("feature extraction failed: %v", err)
		} else {
			features = &types.AcousticFeatures{
				PitchMean: extracted.PitchMean,
				Tempo:     extracted.Tempo,
				Timbre:    extracted.Timbre,
			}
		}
	}

	return &types.ProcessAudioResponse{
		UserTranscript: transcript,
		Features:       features,
	}, nil
}
