package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "narrator.v1.Narrator"

// Full method names.
const (
	NarrateMethod = "/" + ServiceName + "/Narrate"
	SpeakMethod   = "/" + ServiceName + "/Speak"
)

// ClipNameHeader carries the generated clip file name in Speak response headers.
const ClipNameHeader = "x-clip-name"

// NarratorServer is the server API for the narrator service.
// Messages are protobuf well-known types so no generated code is needed.
type NarratorServer interface {
	// Narrate takes {step, algorithm, difficulty} and returns {explanation}.
	Narrate(context.Context, *structpb.Struct) (*structpb.Struct, error)

	// Speak synthesizes text and returns the MP3 bytes.
	Speak(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NarratorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Narrate", Handler: narrateHandler},
		{MethodName: "Speak", Handler: speakHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "narrator/v1/narrator.proto",
}

func narrateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NarratorServer).Narrate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: NarrateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NarratorServer).Narrate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func speakHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NarratorServer).Speak(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SpeakMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NarratorServer).Speak(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
