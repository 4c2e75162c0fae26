package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ekisa-team/narrator/internal/audio"
	"github.com/ekisa-team/narrator/internal/config"
	"github.com/ekisa-team/narrator/internal/env"
	"github.com/ekisa-team/narrator/internal/envvar"
	"github.com/ekisa-team/narrator/internal/ledger"
	"github.com/ekisa-team/narrator/internal/logger"
	grpcserver "github.com/ekisa-team/narrator/internal/server/grpc"
	httpserver "github.com/ekisa-team/narrator/internal/server/http"
	"github.com/ekisa-team/narrator/internal/service"
	"github.com/ekisa-team/narrator/internal/speech"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		flagHTTPPort   = flag.Int("http-port", 0, "HTTP port to listen on (overrides config)")
		flagGRPCPort   = flag.Int("grpc-port", 0, "gRPC port to listen on (overrides config)")
		flagConfigPath = flag.String("config", path.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")
		flagSchemaPath = flag.String("schema", "", "Path to schema file (defaults to the embedded schema)")
	)
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	environment := env.FromEnv()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(environment.IsProduction()),
			logger.WithLogFile("logs/narrator.log"),
			logger.WithLevel(logger.ParseLevel(os.Getenv(envvar.NarratorLogLevel))),
		),
	)

	if err := run(environment, *flagConfigPath, *flagSchemaPath, *flagHTTPPort, *flagGRPCPort); err != nil {
		slog.Error("Narrator stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(environment env.Environment, configPath, schemaPath string, httpPort, grpcPort int) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, watchConfig, err := loadConfig(configPath, schemaPath)
	if err != nil {
		return err
	}
	if httpPort > 0 {
		cfg.Server.HTTPPort = httpPort
	}
	if grpcPort > 0 {
		cfg.Server.GRPCPort = grpcPort
	}

	engines, err := buildEngines(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := engines.Close(); err != nil {
			slog.Error("Failed to close speech engines", "error", err)
		}
	}()

	store := audio.NewFileStore(config.ResolveAudioDir(cfg))
	opts := []service.SpeechOption{service.WithParameters(cfg.Speech.Parameters)}

	var clips *ledger.SQLiteLedger
	if cfg.Ledger.Path != "" {
		clips, err = ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return err
		}
		defer clips.Close()

		opts = append(opts, service.WithRecorder(clips))
		slog.Info("Clip ledger enabled", "path", cfg.Ledger.Path)
	}

	narrationSvc := service.NewNarration()
	speechSvc := service.NewSpeech(engines, store, speech.Provider(cfg.Speech.Provider), opts...)

	if watchConfig {
		watcher, err := config.NewWatcher(configPath, schemaPath, func(next *config.Config, err error) {
			if err != nil {
				return
			}
			if err := speechSvc.Reconfigure(next.Speech); err != nil {
				slog.Error("Failed to apply reloaded speech config", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		defer watcher.Close()
	}

	router := httpserver.NewRouter(environment)
	api := httpserver.NewAPI(router)
	httpserver.RegisterHealth(api)
	httpserver.NewNarrationHandler(api, narrationSvc)
	httpserver.NewSpeechHandler(api, speechSvc)
	if clips != nil {
		httpserver.NewClipsHandler(api, clips)
	}

	httpSrv := httpserver.NewServer(cfg.Server.HTTPPort, router)
	grpcSrv := grpcserver.NewServer(cfg.Server.GRPCPort, grpcserver.NewHandler(narrationSvc, speechSvc))

	errCh := make(chan error, 2)
	go func() { errCh <- httpSrv.Start() }()
	go func() { errCh <- grpcSrv.Start() }()

	slog.Info("Narrator started",
		"env", environment,
		"http_port", cfg.Server.HTTPPort,
		"grpc_port", cfg.Server.GRPCPort,
		"provider", cfg.Speech.Provider,
		"audio_dir", store.Dir())

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shut down HTTP server", "error", err)
	}
	grpcSrv.Stop()

	return serveErr
}

// loadConfig loads the config file. A missing file falls back to the
// defaults and disables hot reload.
func loadConfig(configPath, schemaPath string) (*config.Config, bool, error) {
	cfg, err := config.LoadAndValidate(configPath, schemaPath)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Config file not found, using defaults", "config", configPath)
		return config.Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}

	slog.Info("Config loaded successfully", "config", configPath)
	return cfg, true, nil
}
