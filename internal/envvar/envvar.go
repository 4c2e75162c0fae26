package envvar

const (
	// NarratorEnv is the environment variable used to determine the environment
	NarratorEnv = "NARRATOR_ENV"

	// NarratorServerHTTPPort is the environment variable used to determine the HTTP port
	NarratorServerHTTPPort = "NARRATOR_SERVER_HTTP_PORT"

	// NarratorServerGRPCPort is the environment variable used to determine the gRPC port
	NarratorServerGRPCPort = "NARRATOR_SERVER_GRPC_PORT"

	// NarratorAudioDir overrides the directory generated audio clips are written to
	NarratorAudioDir = "NARRATOR_AUDIO_DIR"

	// NarratorModelsPath overrides the directory downloaded voice models are stored in
	NarratorModelsPath = "NARRATOR_MODELS_PATH"

	// NarratorLogLevel sets the minimum log level (debug, info, warn, error)
	NarratorLogLevel = "NARRATOR_LOG_LEVEL"
)
