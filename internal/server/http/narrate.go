package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/narrator/internal/narration"
	"github.com/ekisa-team/narrator/internal/service"
)

type (
	NarrateRequestDTO struct {
		_          struct{} `json:"-" additionalProperties:"true"`
		Step       string   `json:"step"       doc:"Step being taught"       example:"loop"`
		Algorithm  string   `json:"algorithm"  doc:"Algorithm being taught"  example:"bubble sort"`
		Difficulty string   `json:"difficulty" doc:"Audience difficulty level" example:"beginner"`
	}

	NarrateResponseDTO struct {
		Explanation string `json:"explanation"`
	}
)

type (
	NarrateInput struct {
		Body NarrateRequestDTO
	}

	NarrateOutput struct {
		Body NarrateResponseDTO
	}
)

// NarrationHandler handles HTTP requests for step narration.
type NarrationHandler struct {
	service *service.Narration
}

// NewNarrationHandler creates a new NarrationHandler instance.
func NewNarrationHandler(api huma.API, service *service.Narration) *NarrationHandler {
	h := &NarrationHandler{service: service}

	huma.Register(api, huma.Operation{
		OperationID:   "narrate",
		Method:        http.MethodPost,
		Path:          "/narrate",
		Summary:       "Explain an algorithm-teaching step",
		Tags:          []string{"narration"},
		DefaultStatus: http.StatusOK,
	}, h.handleNarrate)

	return h
}

// handleNarrate handles the narrate operation.
func (h *NarrationHandler) handleNarrate(ctx context.Context, input *NarrateInput) (*NarrateOutput, error) {
	explanation := h.service.Explain(narration.Request{
		Step:       input.Body.Step,
		Algorithm:  input.Body.Algorithm,
		Difficulty: input.Body.Difficulty,
	})

	return &NarrateOutput{
		Body: NarrateResponseDTO{Explanation: explanation},
	}, nil
}
