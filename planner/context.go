package planner

import (
	"context"
	"fmt"
	"strconv"

	"resilienceplanner/weather"
)

// ClimateContext is what the weather panel renders: live numbers when the
// fetch worked, otherwise the fixed 2026 scenario narrative.
type ClimateContext struct {
	County    string           `json:"county"`
	Live      bool             `json:"live"`
	Snapshot  weather.Snapshot `json:"snapshot,omitempty"`
	Narrative string           `json:"narrative"`
}

// ClimateContext fetches the county forecast and renders the context text.
// A failed fetch degrades to the generic outlook; it is never an error.
func (p *Planner) ClimateContext(ctx context.Context, county string) ClimateContext {
	snap, ok := p.weather.Fetch(ctx, county)
	if !ok {
		return ClimateContext{
			County:    county,
			Narrative: fallbackNarrative(county),
		}
	}
	return ClimateContext{
		County:    county,
		Live:      true,
		Snapshot:  snap,
		Narrative: liveNarrative(county, snap),
	}
}

func liveNarrative(county string, snap weather.Snapshot) string {
	return fmt.Sprintf(
		"Now (%s): %s°C, %s · Rain: %s mm · Humidity: %s%%\n"+
			"7-day: Highs ~%s°C, Lows ~%s°C · Total rain: ~%.0f mm\n"+
			"2026 outlook: Heavy rains/floods then dry spells - plan for both.\n"+
			"Challenge: Unpredictable weather; many traditional crops at risk.",
		county,
		fmtMaybe(snap.Temperature),
		snap.Condition(),
		strconv.FormatFloat(snap.Precipitation, 'f', -1, 64),
		fmtMaybe(snap.Humidity),
		fmtMaybe(snap.TodayHigh()),
		fmtMaybe(snap.TodayLow()),
		snap.WeekPrecipitation(),
	)
}

func fallbackNarrative(county string) string {
	return fmt.Sprintf(
		"2026 outlook: Heavy rains/floods expected, then dry spells.\n"+
			"Region: %s, Kenya (all 47 counties).\n"+
			"Challenge: Unpredictable weather; many traditional crops at risk.",
		county,
	)
}

// fmtMaybe renders a nullable reading, "—" when absent.
func fmtMaybe(v *float64) string {
	if v == nil {
		return "—"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
