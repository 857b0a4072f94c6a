// Command lambda generates one resilience plan per invocation on AWS Lambda,
// using the Bedrock model backend and logging actions to CloudWatch via stdout.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joeshaw/envdecode"

	"resilienceplanner"
	"resilienceplanner/model/bedrock"
	"resilienceplanner/planner"
	"resilienceplanner/session"
	"resilienceplanner/weather"
)

type Params struct {
	County    string `json:"county"`
	Town      string `json:"town"`
	SoilType  string `json:"soil_type"`
	Crop      string `json:"crop"`
	QuickPlan bool   `json:"quick_plan"`
}

type Results struct {
	Rundown string `json:"rundown"`
	Report  string `json:"report"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		var modelConfig resilienceplanner.ModelConfig
		if err := envdecode.Decode(&modelConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		var plannerConfig resilienceplanner.PlannerConfig
		if err := envdecode.Decode(&plannerConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRetryMaxAttempts(5))
		if err != nil {
			slog.Error("SETUP: Failed to load AWS config", "error", err)
			return Results{}, err
		}

		llm := bedrock.NewClient(bedrockruntime.NewFromConfig(awsCfg), bedrock.Options{
			ModelID:     modelConfig.BedrockModelID,
			MaxTokens:   modelConfig.MaxTokens,
			Temperature: modelConfig.Temperature,
			TopP:        modelConfig.TopP,
		})

		wc := weather.NewClient(plannerConfig.WeatherEndpoint, plannerConfig.WeatherTimeout, http.DefaultClient)
		p := planner.New(llm, wc, plannerConfig.MaxPlanChars, resilienceplanner.NewStdoutActionLogger())

		profile := resilienceplanner.FarmProfile{
			County:    params.County,
			Town:      params.Town,
			SoilType:  params.SoilType,
			Crop:      params.Crop,
			QuickPlan: params.QuickPlan,
		}
		profile.Normalize()

		report, err := p.GeneratePlan(ctx, session.New(), profile)
		if err != nil {
			slog.Error("RESULT: Plan generation failed", "county", profile.County, "error", err)
			return Results{}, err
		}

		return Results{Rundown: report.Rundown, Report: report.Report}, nil
	}

	lambda.Start(fn)
}
