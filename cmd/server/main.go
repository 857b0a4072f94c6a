package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"resilienceplanner"
	"resilienceplanner/archive"
	"resilienceplanner/model/bedrock"
	"resilienceplanner/model/gemini"
	"resilienceplanner/model/mock"
	"resilienceplanner/model/ollama"
	"resilienceplanner/planner"
	"resilienceplanner/session"
	"resilienceplanner/share"
	"resilienceplanner/weather"
	"resilienceplanner/web"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.Info("SETUP: No .env file found, using the process environment")
	}

	var modelConfig resilienceplanner.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var plannerConfig resilienceplanner.PlannerConfig
	if err := envdecode.Decode(&plannerConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var serverConfig resilienceplanner.ServerConfig
	if err := envdecode.Decode(&serverConfig); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	llm, err := newModelClient(ctx, modelConfig)
	if err != nil {
		log.Fatalf("Failed to configure model backend %q: %s", modelConfig.Backend, err)
	}

	actionLogger, cleanup, err := newActionLogger(plannerConfig)
	if err != nil {
		log.Fatalf("Failed to create action logger: %s", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("Failed to flush action log", "error", err)
		}
	}()

	tracerProvider, meterProvider, otelShutdown, err := resilienceplanner.InitOtel(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %s", err)
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	wc := weather.NewClient(plannerConfig.WeatherEndpoint, plannerConfig.WeatherTimeout, http.DefaultClient)

	p := planner.New(llm, wc, plannerConfig.MaxPlanChars, actionLogger)
	ip := planner.NewInstrumentedPlanner(p,
		tracerProvider.Tracer(resilienceplanner.TracerNamePlanner),
		meterProvider.Meter(resilienceplanner.TracerNamePlanner),
	)

	archiver, err := newArchiver(ctx, serverConfig)
	if err != nil {
		log.Fatalf("Failed to configure plan archive: %s", err)
	}

	var shareClient resilienceplanner.ShareClient
	if serverConfig.ShareWebhookURL != "" {
		shareClient = share.NewClient(serverConfig.ShareWebhookURL, http.DefaultClient)
	}

	srv := web.NewServer(ip, session.NewStore(), archiver, shareClient, serverConfig.ShareChannel)

	slog.Info("SETUP: Listening", "addr", serverConfig.ListenAddr, "backend", modelConfig.Backend)
	if err := srv.Routes().Run(serverConfig.ListenAddr); err != nil {
		log.Fatalf("Server exited: %s", err)
	}
}

func newModelClient(ctx context.Context, cfg resilienceplanner.ModelConfig) (resilienceplanner.ModelClient, error) {
	switch cfg.Backend {
	case "gemini":
		return gemini.NewClient(ctx, gemini.Options{
			APIKey:      cfg.GeminiAPIKey,
			ModelID:     cfg.GeminiModelID,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
		})
	case "ollama":
		return ollama.NewClient(cfg.OllamaEndpoint, cfg.OllamaModelID, http.DefaultClient), nil
	case "bedrock":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRetryMaxAttempts(5))
		if err != nil {
			return nil, err
		}
		return bedrock.NewClient(bedrockruntime.NewFromConfig(awsCfg), bedrock.Options{
			ModelID:     cfg.BedrockModelID,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
		}), nil
	case "mock":
		return mock.NewClient(), nil
	default:
		return nil, fmt.Errorf("unknown model backend %q", cfg.Backend)
	}
}

func newActionLogger(cfg resilienceplanner.PlannerConfig) (resilienceplanner.ActionLogger, func() error, error) {
	if cfg.ActionLogPath == "" {
		return resilienceplanner.NewNoOpActionLogger(), func() error { return nil }, nil
	}

	logFile, err := os.OpenFile(cfg.ActionLogPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open action log file: %w", err)
	}

	logger := resilienceplanner.NewFileActionLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}

func newArchiver(ctx context.Context, cfg resilienceplanner.ServerConfig) (archive.Archiver, error) {
	switch {
	case cfg.ArchiveS3Bucket != "":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return archive.NewS3Archiver(s3.NewFromConfig(awsCfg), cfg.ArchiveS3Bucket, cfg.ArchiveS3Prefix), nil
	case cfg.ArchiveDir != "":
		return archive.NewFileArchiver(cfg.ArchiveDir), nil
	default:
		return archive.NewNoOpArchiver(), nil
	}
}
