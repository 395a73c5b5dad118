package analysis

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Element buckets keyed by progress range. Early sites show preparation
// work, late sites show finished fixtures.
var (
	elementeFrueh = []string{"Leitungswege vorbereitet", "Installationspunkte markiert", "Material bereitgelegt"}
	elementeMitte = []string{"Kabelkanäle montiert", "Leitungen verlegt", "Anschlussdosen gesetzt"}
	elementeSpaet = []string{"Schalter montiert", "Steckdosen angeschlossen", "Verteiler verdrahtet"}

	fallbackRisiken      = []string{"Keine offensichtlichen Sicherheitsrisiken erkannt"}
	fallbackEmpfehlungen = []string{"Installation gemäß VDE fortsetzen", "Prüfung nach Fertigstellung empfohlen"}
	fallbackSchritte     = []string{"Weitere Leitungen verlegen", "Anschlüsse vorbereiten"}
)

// Fallback produces analyses without any external call. It is the
// circuit-breaker of the pipeline: it always succeeds. The progress percent
// is the single random draw; bucket and status are derived from it.
type Fallback struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallback returns a generator seeded from src. Tests pass a fixed seed
// to get reproducible bucket selection.
func NewFallback(src rand.Source) *Fallback {
	return &Fallback{rng: rand.New(src)}
}

// Analyze draws a progress percent uniformly from [0,100) and builds the
// matching analysis.
func (f *Fallback) Analyze(filename string, now time.Time) Analysis {
	f.mu.Lock()
	progress := f.rng.Intn(100)
	f.mu.Unlock()
	return Generate(progress, filename, now)
}

// Generate builds a fully populated offline analysis for a known progress
// value. The seed command uses it directly for deterministic demo data.
func Generate(progress int, filename string, now time.Time) Analysis {
	progress = clampProgress(progress)

	elemente := elementeFrueh
	switch {
	case progress >= 70:
		elemente = elementeSpaet
	case progress >= 30:
		elemente = elementeMitte
	}

	return Analysis{
		Dateiname:          filename,
		AnalyseDatum:       now,
		ErkannteElemente:   append([]string{}, elemente...),
		FortschrittProzent: progress,
		Beschreibung:       fmt.Sprintf("Aufnahme zeigt Elektroinstallation im Fortschritt. Geschätzter Fertigstellungsgrad: %d%%.", progress),
		Status:             StatusFor(progress),
		Sicherheitsrisiken: append([]string{}, fallbackRisiken...),
		Empfehlungen:       append([]string{}, fallbackEmpfehlungen...),
		NaechsteSchritte:   append([]string{}, fallbackSchritte...),
		AIModel:            FallbackModel,
	}
}
