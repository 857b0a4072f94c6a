// Package planner orchestrates one farm-advisory session: it builds prompts,
// calls the model backend, splits the response, and keeps the session state
// consistent across generation and follow-up turns.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resilienceplanner"
	"resilienceplanner/prompt"
	"resilienceplanner/session"
	"resilienceplanner/weather"
)

// ErrNoPlan is returned when a follow-up arrives before any plan exists.
var ErrNoPlan = errors.New("no plan generated yet")

const (
	ActionGeneratePlan = "generate_plan"
	ActionFollowUp     = "follow_up"
)

// llmClient is the model contract the planner needs: one opaque prompt in,
// one opaque text response out.
type llmClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// weatherClient reports a forecast snapshot, or not-ok when the weather
// service is unavailable.
type weatherClient interface {
	Fetch(ctx context.Context, county string) (weather.Snapshot, bool)
}

// Planner drives the generate/follow-up cycle. Each action runs to
// completion before the next; there is at most one model call in flight per
// user action.
type Planner struct {
	llm          llmClient
	weather      weatherClient
	maxPlanChars int
	logger       resilienceplanner.ActionLogger
}

// New initializes a planner. maxPlanChars bounds the plan snippet embedded in
// follow-up prompts; zero means the default.
func New(llm llmClient, w weatherClient, maxPlanChars int, log resilienceplanner.ActionLogger) *Planner {
	if maxPlanChars <= 0 {
		maxPlanChars = prompt.DefaultMaxPlanChars
	}
	return &Planner{
		llm:          llm,
		weather:      w,
		maxPlanChars: maxPlanChars,
		logger:       log,
	}
}

// GeneratePlan runs one plan generation for the profile. On success the new
// report replaces the session's previous one and the transcript resets. On
// failure the session is left untouched, prior report included.
func (p *Planner) GeneratePlan(ctx context.Context, sess *session.Session, profile resilienceplanner.FarmProfile) (resilienceplanner.AdvisoryReport, error) {
	slog.Info("PLANNER: Generating plan", "county", profile.County, "crop", profile.Crop, "quick", profile.QuickPlan)

	planPrompt := prompt.BuildPlanPrompt(profile)
	entry := resilienceplanner.ActionLog{
		Action:    ActionGeneratePlan,
		Timestamp: time.Now(),
		County:    profile.County,
		Prompt:    planPrompt,
	}

	out, err := p.llm.Generate(ctx, planPrompt)
	if err != nil {
		entry.Error = err.Error()
		p.logAction(entry)
		return resilienceplanner.AdvisoryReport{}, fmt.Errorf("failed to generate plan: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		entry.Error = "empty model response"
		p.logAction(entry)
		return resilienceplanner.AdvisoryReport{}, errors.New("model returned an empty response")
	}
	entry.Output = out
	p.logAction(entry)

	rundown, fullReport := prompt.SplitRundown(out)
	report := resilienceplanner.AdvisoryReport{Rundown: rundown, Report: fullReport}

	sess.StoreReport(rundown, fullReport)

	slog.Info("PLANNER: Plan stored", "county", profile.County, "rundown_len", len(rundown), "report_len", len(fullReport))
	return report, nil
}

// Answer runs one follow-up turn against the stored plan. On success the
// question and reply are appended to the transcript. On failure the question
// is still appended, paired with an error-flavored assistant turn, so the
// transcript stays coherent; the stored report is never altered.
func (p *Planner) Answer(ctx context.Context, sess *session.Session, question string) (string, error) {
	report := sess.CurrentReport()
	if report == "" {
		return "", ErrNoPlan
	}

	slog.Info("PLANNER: Answering follow-up", "question_len", len(question))

	chatPrompt := prompt.BuildChatPrompt(report, question, p.maxPlanChars)
	entry := resilienceplanner.ActionLog{
		Action:    ActionFollowUp,
		Timestamp: time.Now(),
		Prompt:    chatPrompt,
	}

	out, err := p.llm.Generate(ctx, chatPrompt)
	if err != nil {
		entry.Error = err.Error()
		p.logAction(entry)
		sess.AppendTurn(session.RoleUser, question)
		sess.AppendTurn(session.RoleAssistant, "Error: "+err.Error())
		return "", fmt.Errorf("failed to answer follow-up: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		out = "Could not generate a reply."
	}
	entry.Output = out
	p.logAction(entry)

	sess.AppendTurn(session.RoleUser, question)
	sess.AppendTurn(session.RoleAssistant, out)
	return out, nil
}

// logAction logs an action using the configured logger, handling errors gracefully
func (p *Planner) logAction(entry resilienceplanner.ActionLog) {
	if p.logger != nil {
		if err := p.logger.LogAction(entry); err != nil {
			slog.Error("Failed to log planner action", "error", err, "action", entry.Action)
		}
	}
}
