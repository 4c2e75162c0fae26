package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/narrator/internal/ledger"
)

// ClipLister lists recorded clips.
type ClipLister interface {
	List(ctx context.Context, limit int) ([]ledger.Entry, error)
}

type (
	ClipDTO struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		TextHash   string    `json:"text_hash"`
		TextLength int       `json:"text_length"`
		Bytes      int64     `json:"bytes"`
		Provider   string    `json:"provider"`
		CreatedAt  time.Time `json:"created_at"`
	}

	ListClipsInput struct {
		Limit int `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of clips to return"`
	}

	ListClipsOutput struct {
		Body struct {
			Clips []ClipDTO `json:"clips"`
		}
	}
)

// ClipsHandler handles HTTP requests for the clip ledger.
type ClipsHandler struct {
	lister ClipLister
}

// NewClipsHandler creates a new ClipsHandler instance.
func NewClipsHandler(api huma.API, lister ClipLister) *ClipsHandler {
	h := &ClipsHandler{lister: lister}

	huma.Register(api, huma.Operation{
		OperationID:   "list-clips",
		Method:        http.MethodGet,
		Path:          "/clips",
		Summary:       "List recently synthesized clips",
		Tags:          []string{"speech"},
		DefaultStatus: http.StatusOK,
	}, h.handleList)

	return h
}

// handleList handles the list-clips operation.
func (h *ClipsHandler) handleList(ctx context.Context, input *ListClipsInput) (*ListClipsOutput, error) {
	entries, err := h.lister.List(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list clips", err)
	}

	out := &ListClipsOutput{}
	out.Body.Clips = make([]ClipDTO, 0, len(entries))
	for _, e := range entries {
		out.Body.Clips = append(out.Body.Clips, ClipDTO{
			ID:         e.ID,
			Name:       e.Name,
			TextHash:   e.TextHash,
			TextLength: e.TextLength,
			Bytes:      e.Bytes,
			Provider:   e.Provider,
			CreatedAt:  e.CreatedAt,
		})
	}

	return out, nil
}
