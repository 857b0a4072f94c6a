package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resilienceplanner"
)

func TestBuildPlanPrompt(t *testing.T) {
	profile := resilienceplanner.FarmProfile{
		County:   "Kitui",
		Town:     "Mwingi",
		SoilType: resilienceplanner.SoilSandyLoamy,
		Crop:     "Sorghum",
	}

	t.Run("detailed plan", func(t *testing.T) {
		p := BuildPlanPrompt(profile)

		assert.Contains(t, p, "Farmer county: Kitui")
		assert.Contains(t, p, "Farmer local area: Mwingi")
		assert.Contains(t, p, "Soil type: Sandy/Loamy")
		assert.Contains(t, p, "Currently growing: Sorghum")
		assert.Contains(t, p, "Heavy rains/floods followed by dry spells in 2026")

		// Rundown contract with both markers, named for the crop.
		assert.Contains(t, p, RundownStart)
		assert.Contains(t, p, RundownEnd)
		assert.Contains(t, p, "Best season for Sorghum")
		assert.Less(t, strings.Index(p, RundownStart), strings.Index(p, RundownEnd))

		// Detailed mode carries the five numbered sections.
		for _, section := range []string{
			"CLIMATE RISK ASSESSMENT",
			"RECOMMENDED PIVOT CROPS",
			"LOCAL SUPPLIER RECOMMENDATIONS",
			"IMPLEMENTATION TIMELINE",
			"RISK MITIGATION PRACTICES",
		} {
			assert.Contains(t, p, section)
		}
		assert.NotContains(t, p, "SHORT, ACTION-FOCUSED")
	})

	t.Run("quick plan", func(t *testing.T) {
		quick := profile
		quick.QuickPlan = true
		p := BuildPlanPrompt(quick)

		assert.Contains(t, p, "SHORT, ACTION-FOCUSED RESILIENCE PLAN")
		assert.Contains(t, p, "immediate next steps")
		assert.NotContains(t, p, "CLIMATE RISK ASSESSMENT")
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, BuildPlanPrompt(profile), BuildPlanPrompt(profile))
	})
}

func TestBuildChatPrompt(t *testing.T) {
	t.Run("wraps report and question", func(t *testing.T) {
		p := BuildChatPrompt("THE PLAN", "Which crop first?", 0)

		assert.Contains(t, p, PlanStart+"\nTHE PLAN\n"+PlanEnd)
		assert.Contains(t, p, "User question: Which crop first?")
		assert.Contains(t, p, "only source")
	})

	t.Run("truncates long reports", func(t *testing.T) {
		report := strings.Repeat("x", 20_000)
		p := BuildChatPrompt(report, "anything", 12_000)

		start := strings.Index(p, PlanStart)
		end := strings.Index(p, PlanEnd)
		require.Greater(t, end, start)

		embedded := strings.Trim(p[start+len(PlanStart):end], "\n")
		assert.Len(t, embedded, 12_000)
		assert.Equal(t, report[:12_000], embedded)
	})

	t.Run("short reports pass through whole", func(t *testing.T) {
		p := BuildChatPrompt("short", "q", 12_000)
		assert.Contains(t, p, PlanStart+"\nshort\n"+PlanEnd)
	})
}
