package analysis

import "time"

// Status enum, derived from progress unless the model supplies its own.
const (
	StatusBegonnen = "begonnen"
	StatusInArbeit = "in Arbeit"
	StatusFertig   = "fertig"
)

// FallbackModel tags results produced without a vision model call, so
// statistics and clients can tell degraded results from genuine ones.
const FallbackModel = "mock-fallback"

// Analysis is the normalized result of one photo analysis. List fields are
// always non-nil; progress is always within [0,100].
type Analysis struct {
	Dateiname          string    `json:"dateiname"`
	AnalyseDatum       time.Time `json:"analyseDatum"`
	ErkannteElemente   []string  `json:"erkannteElemente"`
	FortschrittProzent int       `json:"fortschrittProzent"`
	Beschreibung       string    `json:"beschreibung"`
	Status             string    `json:"status"`
	Sicherheitsrisiken []string  `json:"sicherheitsrisiken"`
	Empfehlungen       []string  `json:"empfehlungen"`
	NaechsteSchritte   []string  `json:"naechsteSchritte"`
	RoheAnalyse        string    `json:"roheAnalyse,omitempty"`
	AIModel            string    `json:"aiModel"`
}

// StatusFor maps a progress percent to a status: <50 begonnen,
// 50-80 in Arbeit, >80 fertig.
func StatusFor(progress int) string {
	switch {
	case progress > 80:
		return StatusFertig
	case progress >= 50:
		return StatusInArbeit
	default:
		return StatusBegonnen
	}
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
