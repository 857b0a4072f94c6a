package prompt

// Markers wrapped around the plan snippet in follow-up prompts.
const (
	PlanStart = "--- PLAN ---"
	PlanEnd   = "--- END PLAN ---"
)

// DefaultMaxPlanChars bounds how much of the plan is sent back to the model
// per follow-up turn, to stay under token limits.
const DefaultMaxPlanChars = 12_000

// BuildChatPrompt composes a follow-up prompt that answers a question using
// only the stored plan as context. The plan is truncated, not summarized:
// content past maxChars is simply unavailable to the model for that turn.
func BuildChatPrompt(report, question string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxPlanChars
	}
	if len(report) > maxChars {
		report = report[:maxChars]
	}

	return "Use this resilience plan as the only source. Answer the user's question " +
		"briefly and practically. If they ask for another report or summary, provide it.\n\n" +
		PlanStart + "\n" + report + "\n" + PlanEnd + "\n\nUser question: " + question
}
