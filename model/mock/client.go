// Package mock implements a canned, deterministic model backend for tests
// and offline runs.
package mock

import (
	"context"
	"log/slog"
	"strings"

	"resilienceplanner/prompt"
)

type Client struct {
	// Err, when set, makes every Generate call fail with it.
	Err error
}

func NewClient() *Client {
	return &Client{}
}

// Generate returns a canned response shaped for the prompt it receives: a
// marker-delimited plan for generation prompts, a short reply for follow-up
// prompts. Deterministic; real models may not be so kind.
func (c *Client) Generate(ctx context.Context, p string) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "backend", "mock", "prompt_len", len(p))

	if c.Err != nil {
		return "", c.Err
	}

	if strings.Contains(p, prompt.RundownStart) {
		return cannedPlan, nil
	}
	if strings.Contains(p, prompt.PlanStart) {
		return "Start with the short-cycle beans in the first week; they handle both the floods and the dry spell that follows.", nil
	}
	return "Mock response.", nil
}

const cannedPlan = prompt.RundownStart + `
Advisable to grow Maize now: No
Current season: Short rains
Best season for Maize: Long rains, March-May
Tips: - Prepare drainage now - Source certified seed early - Stagger planting dates
` + prompt.RundownEnd + `

**CLIMATE RISK ASSESSMENT**
Heavy rains followed by dry spells put a full-season maize crop at risk of
both waterlogging and late-season moisture stress.

**RECOMMENDED PIVOT CROPS**
- Short-cycle beans (60-75 days), good yield on well-drained plots.
- Sorghum (90 days), tolerates the dry spell that follows the floods.

**IMPLEMENTATION TIMELINE**
Week 1: open drainage furrows. Week 2: source seed. Week 3: plant as the
first rains settle.

Farmers in neighboring counties with similar soils can apply the same
sequence shifted by their local onset of rains.`
