package planner

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"resilienceplanner"
	"resilienceplanner/session"
)

// InstrumentedPlanner wraps a Planner with traces and metrics for each
// user-triggered action.
type InstrumentedPlanner struct {
	planner *Planner
	tracer  trace.Tracer
	meter   metric.Meter
}

// NewInstrumentedPlanner initializes a new instrumented planner.
func NewInstrumentedPlanner(p *Planner, tracer trace.Tracer, meter metric.Meter) *InstrumentedPlanner {
	return &InstrumentedPlanner{
		planner: p,
		tracer:  tracer,
		meter:   meter,
	}
}

// GeneratePlan delegates to the wrapped planner, recording duration and
// success/failure counts.
func (ip *InstrumentedPlanner) GeneratePlan(ctx context.Context, sess *session.Session, profile resilienceplanner.FarmProfile) (resilienceplanner.AdvisoryReport, error) {
	ctx, span := ip.tracer.Start(ctx, "Planner.GeneratePlan", trace.WithAttributes(
		attribute.String("farm.county", profile.County),
		attribute.String("farm.crop", profile.Crop),
		attribute.Bool("farm.quick_plan", profile.QuickPlan),
	))
	defer span.End()

	plansCounter, _ := ip.meter.Int64Counter("plans_generated_total",
		metric.WithDescription("Total number of plan generations attempted"))
	planFailuresCounter, _ := ip.meter.Int64Counter("plan_failures_total",
		metric.WithDescription("Total number of plan generations that failed"))
	planDurationHist, _ := ip.meter.Float64Histogram("plan_duration_seconds",
		metric.WithDescription("Duration of plan generation in seconds"))
	reportLengthGauge, _ := ip.meter.Int64Gauge("report_length_chars",
		metric.WithDescription("Length of the generated report in characters"))

	plansCounter.Add(ctx, 1)
	start := time.Now()

	report, err := ip.planner.GeneratePlan(ctx, sess, profile)
	planDurationHist.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		planFailuresCounter.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return report, err
	}

	reportLengthGauge.Record(ctx, int64(len(report.Report)))
	span.SetAttributes(
		attribute.Int("report.rundown_length", len(report.Rundown)),
		attribute.Int("report.length", len(report.Report)),
	)
	return report, nil
}

// Answer delegates a follow-up turn, recording duration and failure counts.
func (ip *InstrumentedPlanner) Answer(ctx context.Context, sess *session.Session, question string) (string, error) {
	ctx, span := ip.tracer.Start(ctx, "Planner.Answer")
	defer span.End()

	followUpsCounter, _ := ip.meter.Int64Counter("follow_ups_total",
		metric.WithDescription("Total number of follow-up turns attempted"))
	followUpFailuresCounter, _ := ip.meter.Int64Counter("follow_up_failures_total",
		metric.WithDescription("Total number of follow-up turns that failed"))
	followUpDurationHist, _ := ip.meter.Float64Histogram("follow_up_duration_seconds",
		metric.WithDescription("Duration of follow-up turns in seconds"))

	followUpsCounter.Add(ctx, 1)
	start := time.Now()

	answer, err := ip.planner.Answer(ctx, sess, question)
	followUpDurationHist.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		followUpFailuresCounter.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return answer, err
	}

	span.SetAttributes(attribute.Int("answer.length", len(answer)))
	return answer, nil
}

// ClimateContext delegates the weather panel fetch, counting fallbacks.
func (ip *InstrumentedPlanner) ClimateContext(ctx context.Context, county string) ClimateContext {
	ctx, span := ip.tracer.Start(ctx, "Planner.ClimateContext", trace.WithAttributes(
		attribute.String("farm.county", county),
	))
	defer span.End()

	weatherFallbacksCounter, _ := ip.meter.Int64Counter("weather_fallbacks_total",
		metric.WithDescription("Total number of weather fetches that fell back to the generic narrative"))

	cc := ip.planner.ClimateContext(ctx, county)
	if !cc.Live {
		weatherFallbacksCounter.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Bool("weather.live", cc.Live))
	return cc
}
