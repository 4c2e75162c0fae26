package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/narrator/internal/audio"
	"github.com/ekisa-team/narrator/internal/service"
)

type (
	SpeakRequestDTO struct {
		_    struct{} `json:"-" additionalProperties:"true"`
		Text string   `json:"text" doc:"Text to synthesize" example:"Compare the two neighbours and swap them."`
	}

	SpeakInput struct {
		Body SpeakRequestDTO
	}
)

// SpeechHandler handles HTTP requests for text-to-speech.
type SpeechHandler struct {
	service *service.Speech
}

// NewSpeechHandler creates a new SpeechHandler instance.
func NewSpeechHandler(api huma.API, service *service.Speech) *SpeechHandler {
	h := &SpeechHandler{service: service}

	huma.Register(api, huma.Operation{
		OperationID: "speak",
		Method:      http.MethodPost,
		Path:        "/speak",
		Summary:     "Synthesize text into an MP3 file",
		Tags:        []string{"speech"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Synthesized audio",
				Content: map[string]*huma.MediaType{
					audio.MediaType: {Schema: &huma.Schema{Type: "string", Format: "binary"}},
				},
			},
		},
	}, h.handleSpeak)

	return h
}

// handleSpeak handles the speak operation. The clip is synthesized before
// any byte is written, so failures still produce a proper error response.
func (h *SpeechHandler) handleSpeak(ctx context.Context, input *SpeakInput) (*huma.StreamResponse, error) {
	clip, err := h.service.Speak(ctx, input.Body.Text)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to synthesize speech", err)
	}

	f, size, err := h.service.Open(clip)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to open synthesized audio", err)
	}

	return &huma.StreamResponse{
		Body: func(hctx huma.Context) {
			defer f.Close()

			hctx.SetHeader("Content-Type", audio.MediaType)
			hctx.SetHeader("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, clip.Name))
			hctx.SetHeader("Content-Length", strconv.FormatInt(size, 10))
			hctx.SetStatus(http.StatusOK)

			if _, err := io.Copy(hctx.BodyWriter(), f); err != nil {
				slog.Warn("Failed to stream clip", "clip", clip.Name, "error", err)
			}
		},
	}, nil
}
