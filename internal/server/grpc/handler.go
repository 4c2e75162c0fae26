package grpc

import (
	"context"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ekisa-team/narrator/internal/narration"
	"github.com/ekisa-team/narrator/internal/service"
)

// Handler implements NarratorServer on top of the services.
type Handler struct {
	narration *service.Narration
	speech    *service.Speech
}

// NewHandler creates a new Handler instance.
func NewHandler(narration *service.Narration, speech *service.Speech) *Handler {
	return &Handler{narration: narration, speech: speech}
}

// Narrate explains a teaching step. Every field must be a string.
func (h *Handler) Narrate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	fields := in.GetFields()

	get := func(name string) (string, error) {
		v, ok := fields[name]
		if !ok {
			return "", status.Errorf(codes.InvalidArgument, "missing field %q", name)
		}
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return "", status.Errorf(codes.InvalidArgument, "field %q must be a string", name)
		}
		return s.StringValue, nil
	}

	var req narration.Request
	var err error
	if req.Step, err = get("step"); err != nil {
		return nil, err
	}
	if req.Algorithm, err = get("algorithm"); err != nil {
		return nil, err
	}
	if req.Difficulty, err = get("difficulty"); err != nil {
		return nil, err
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"explanation": structpb.NewStringValue(h.narration.Explain(req)),
	}}, nil
}

// Speak synthesizes text and returns the clip bytes. The clip name is sent
// in the ClipNameHeader response header. An empty value is synthesized as
// is, like an empty "text" on the HTTP surface.
func (h *Handler) Speak(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "missing request")
	}

	clip, err := h.speech.Speak(ctx, in.GetValue())
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to synthesize speech: %v", err)
	}

	f, _, err := h.speech.Open(clip)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to open synthesized audio: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to read synthesized audio: %v", err)
	}

	if err := grpc.SetHeader(ctx, metadata.Pairs(ClipNameHeader, clip.Name)); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to set header: %v", err)
	}

	return wrapperspb.Bytes(data), nil
}
