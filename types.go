package resilienceplanner

import (
	"context"
	"net/http"
	"strings"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ModelClient is the text-in/text-out contract every model backend satisfies.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ShareClient interface {
	PostMessage(ctx context.Context, channel string, message string) error
}

// Soil categories offered on the farm form.
const (
	SoilRedVolcanic = "Red Volcanic"
	SoilBlackCotton = "Black Cotton"
	SoilSandyLoamy  = "Sandy/Loamy"
)

func SoilTypes() []string {
	return []string{SoilRedVolcanic, SoilBlackCotton, SoilSandyLoamy}
}

// FarmProfile carries the operator-supplied inputs for one plan generation.
type FarmProfile struct {
	County    string `json:"county"`
	Town      string `json:"town"`
	SoilType  string `json:"soil_type"`
	Crop      string `json:"crop"`
	QuickPlan bool   `json:"quick_plan"`
}

// Normalize fills blank fields with the default demo farm (Kiambu / Ruiru / Maize).
func (p *FarmProfile) Normalize() {
	if strings.TrimSpace(p.County) == "" {
		p.County = "Kiambu"
	}
	if strings.TrimSpace(p.Town) == "" {
		p.Town = "Ruiru"
	}
	if strings.TrimSpace(p.SoilType) == "" {
		p.SoilType = SoilRedVolcanic
	}
	if strings.TrimSpace(p.Crop) == "" {
		p.Crop = "Maize"
	}
}

// AdvisoryReport is the split model output for one generation: the short
// rundown block (may be empty when the model skipped the markers) and the
// full plan that follows it.
type AdvisoryReport struct {
	Rundown string `json:"rundown"`
	Report  string `json:"report"`
}

// Text joins the rundown and the full report the way the session stores them.
func (r AdvisoryReport) Text() string {
	if r.Rundown == "" {
		return r.Report
	}
	return r.Rundown + "\n\n" + r.Report
}
