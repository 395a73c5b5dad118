package journal

import (
	"math"
	"time"
)

// Statistics are derived metrics over the current store contents,
// recomputed from scratch on every call.
type Statistics struct {
	TotalImages      int            `json:"totalImages"`
	TotalProjects    int            `json:"totalProjects"`
	AvgProgress      int            `json:"avgProgress"`
	EntriesLastWeek  int            `json:"entriesLastWeek"`
	ProjectsByStatus map[string]int `json:"projectsByStatus"`
	AIModelUsage     map[string]int `json:"aiModelUsage"`
}

// ComputeStatistics is a pure function of a document snapshot.
// AvgProgress is 0 for an empty journal; EntriesLastWeek counts entries
// uploaded strictly after now minus 7 days.
func ComputeStatistics(doc Document, now time.Time) Statistics {
	stats := Statistics{
		TotalImages:   len(doc.Eintraege),
		TotalProjects: len(doc.Projekte),
		ProjectsByStatus: map[string]int{
			ProjectAktiv:         0,
			ProjectAbgeschlossen: 0,
		},
		AIModelUsage: map[string]int{},
	}

	if len(doc.Eintraege) > 0 {
		total := 0
		for _, e := range doc.Eintraege {
			total += e.Analyse.FortschrittProzent
		}
		stats.AvgProgress = int(math.Round(float64(total) / float64(len(doc.Eintraege))))
	}

	weekAgo := now.AddDate(0, 0, -7)
	for _, e := range doc.Eintraege {
		if e.HochgeladenAm.After(weekAgo) {
			stats.EntriesLastWeek++
		}
		model := e.VerwendetesModel
		if model == "" {
			model = e.Analyse.AIModel
		}
		if model == "" {
			model = "unknown"
		}
		stats.AIModelUsage[model]++
	}

	for _, p := range doc.Projekte {
		status := p.Status
		if status == "" {
			status = ProjectAbgeschlossen
		}
		stats.ProjectsByStatus[status]++
	}

	return stats
}
