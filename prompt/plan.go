// Package prompt composes the text prompts sent to the model and splits the
// marker-delimited rundown back out of its free-text response.
package prompt

import (
	"fmt"

	"resilienceplanner"
)

// Markers the model is asked to put around the short rundown so it can be
// split from the full report.
const (
	RundownStart = "--- RUNDOWN ---"
	RundownEnd   = "--- END RUNDOWN ---"
)

const quickPlanStyle = `PROVIDE A SHORT, ACTION-FOCUSED RESILIENCE PLAN with:
- 3-5 bullet points on the main climate risks for the farmer.
- 3-5 bullet points listing specific alternative crops and varieties.
- 3-5 bullet points outlining immediate next steps for the coming weeks.
Keep it clear and practical. Add one short paragraph on how farmers in other Kenyan counties with similar conditions can adapt the same ideas.`

const detailedPlanStyle = `PROVIDE A COMPREHENSIVE RESILIENCE STRATEGY with these sections:

1. **CLIMATE RISK ASSESSMENT**
   - Why is the current crop at risk in 2026 given the forecasted weather?
   - Specific vulnerabilities for the given soil type and local microclimate.

2. **RECOMMENDED PIVOT CROPS (Short-cycle alternatives)**
   - Suggest 3-4 specific crop varieties suitable for the farmer's location and county.
   - Include expected maturity period and yield potential.
   - Explain how each handles flood/drought cycles.

3. **LOCAL SUPPLIER RECOMMENDATIONS**
   - Name 2-3 likely types of agrovets or seed suppliers in the area.
   - What seeds/inputs they typically stock and timeframe to source.

4. **IMPLEMENTATION TIMELINE**
   - Weekly action steps for immediate preparation (Feb-March 2026).
   - Soil preparation for the given soil type and planting schedule aligned with weather.

5. **RISK MITIGATION PRACTICES**
   - Water harvest/conservation, soil amendments, crop insurance or safety nets in Kenya.

Close with a brief note on adapting this plan for other Kenyan counties with different microclimates.`

// BuildPlanPrompt composes the single prompt for one plan generation. The
// 2026 outlook in the context block is a fixed scenario assumption, not the
// fetched forecast.
func BuildPlanPrompt(profile resilienceplanner.FarmProfile) string {
	planStyle := detailedPlanStyle
	if profile.QuickPlan {
		planStyle = quickPlanStyle
	}

	rundownInstruction := fmt.Sprintf(`FIRST output a very short RUNDOWN (under 80 words) in this exact format, then a blank line, then the full plan:

%s
Advisable to grow [crop] now: Yes or No
Current season: [e.g. Short rains / Long rains / Dry]
Best season for %s: [e.g. Long rains, March-May]
Tips: - One short tip - Another - One more
%s

Then continue with the full resilience plan as requested below.`,
		RundownStart, profile.Crop, RundownEnd)

	return fmt.Sprintf(`Act as an expert Kenyan Agricultural Scientist for smallholder farming across all 47 counties of Kenya in 2026.

CONTEXT:
- Weather forecast: Heavy rains/floods followed by dry spells in 2026.
- Farmer county: %s
- Farmer local area: %s
- Soil type: %s
- Currently growing: %s

%s

The plan must be grounded in the selected county and relevant to farmers across Kenya's 47 counties.

%s`,
		profile.County, profile.Town, profile.SoilType, profile.Crop,
		rundownInstruction, planStyle)
}
