// Command console runs one plan generation from the terminal and prints the
// result, with an optional follow-up question. Useful for trying prompts and
// backends without the web server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"resilienceplanner"
	"resilienceplanner/model/bedrock"
	"resilienceplanner/model/gemini"
	"resilienceplanner/model/mock"
	"resilienceplanner/model/ollama"
	"resilienceplanner/planner"
	"resilienceplanner/session"
	"resilienceplanner/weather"
)

func main() {
	county := flag.String("county", "", "county (defaults to Kiambu)")
	town := flag.String("town", "", "town or area (defaults to Ruiru)")
	soil := flag.String("soil", "", "soil type (defaults to Red Volcanic)")
	crop := flag.String("crop", "", "current or planned crop (defaults to Maize)")
	quick := flag.Bool("quick", false, "generate the short plan")
	ask := flag.String("ask", "", "optional follow-up question after the plan")
	flag.Parse()

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

	llm, err := newModelClient(ctx, modelConfig)
	if err != nil {
		log.Fatalf("Failed to configure model backend %q: %s", modelConfig.Backend, err)
	}

	wc := weather.NewClient(plannerConfig.WeatherEndpoint, plannerConfig.WeatherTimeout, http.DefaultClient)
	p := planner.New(llm, wc, plannerConfig.MaxPlanChars, resilienceplanner.NewStdoutActionLogger())

	profile := resilienceplanner.FarmProfile{
		County:    *county,
		Town:      *town,
		SoilType:  *soil,
		Crop:      *crop,
		QuickPlan: *quick,
	}
	profile.Normalize()

	cc := p.ClimateContext(ctx, profile.County)
	fmt.Println(cc.Narrative)
	fmt.Println()

	sess := session.New()
	report, err := p.GeneratePlan(ctx, sess, profile)
	if err != nil {
		log.Fatalf("Plan generation failed: %s", err)
	}
	fmt.Println(report.Text())

	if *ask != "" {
		answer, err := p.Answer(ctx, sess, *ask)
		if err != nil {
			log.Fatalf("Follow-up failed: %s", err)
		}
		fmt.Println()
		fmt.Println("Q: " + *ask)
		fmt.Println("A: " + answer)
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
