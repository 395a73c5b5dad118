// Command seed fills the journal document with demo projects and entries.
// With a fixed -seed the generated data is fully reproducible.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/struckmeier-elektro/baulog/internal/domain/analysis"
	"github.com/struckmeier-elektro/baulog/internal/domain/journal"
	"github.com/struckmeier-elektro/baulog/internal/infra/db/jsonfile"
)

var standorte = []string{
	"EG Wohnzimmer", "EG Küche", "EG Bad", "EG Flur",
	"1. OG Schlafzimmer", "1. OG Arbeitszimmer", "1. OG Bad",
	"Keller Technikraum", "Keller Waschküche", "Dachboden",
	"Außenbereich Terrasse", "Außenbereich Garten", "Garage",
}

var demoProjekte = []journal.CreateProjectCommand{
	{
		Name:         "Wohnhaus Müllerstraße",
		Adresse:      "Müllerstraße 12, 12345 Berlin",
		Beschreibung: "Komplette Elektroinstallation im Neubau",
		StartDatum:   "2026-01-15",
		Fortschritt:  65,
		Kunde:        "Familie Schmidt",
	},
	{
		Name:         "Bürogebäude TechPark",
		Adresse:      "TechPark 5, 12345 Berlin",
		Beschreibung: "Modernisierung der Elektroanlage",
		StartDatum:   "2026-01-20",
		Fortschritt:  40,
		Kunde:        "TechPark GmbH",
	},
	{
		Name:         "Einkaufszentrum Nord",
		Adresse:      "Hauptstraße 1, 12345 Berlin",
		Beschreibung: "Beleuchtungsinstallation im Einkaufszentrum",
		StartDatum:   "2026-02-01",
		Fortschritt:  25,
		Kunde:        "Einkaufszentrum Nord GmbH",
	},
}

func main() {
	dataFile := flag.String("data", "data/bautagebuch.json", "journal document path")
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed for reproducible demo data")
	flag.Parse()

	store, err := jsonfile.New(*dataFile)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(*seed))
	now := time.Now()
	totalEntries := 0

	for _, dp := range demoProjekte {
		project, err := store.CreateProject(ctx, dp)
		if err != nil {
			log.Fatalf("create project %q: %v", dp.Name, err)
		}

		count := rng.Intn(5) + 3 // 3-7 entries per project
		for i := 0; i < count; i++ {
			uploaded := now.AddDate(0, 0, -rng.Intn(14))

			// Per-entry progress: project reference value plus up to +-10.
			progress := dp.Fortschritt + rng.Intn(21) - 10
			filename := fmt.Sprintf("baustelle-%s-%d.jpg", project.ID, i)
			result := analysis.Generate(progress, filename, uploaded)

			_, err := store.AppendEntry(ctx, journal.Entry{
				BildPfad:         fmt.Sprintf("/uploads/demo-%s-%d.jpg", project.ID, i),
				HochgeladenAm:    uploaded,
				Analyse:          result,
				Projekt:          project.Name,
				Standort:         standorte[rng.Intn(len(standorte))],
				Bemerkungen:      fmt.Sprintf("Arbeitsschritt %d im Bereich %s", i+1, project.Name),
				VerwendetesModel: analysis.FallbackModel,
			})
			if err != nil {
				log.Fatalf("append entry: %v", err)
			}
			totalEntries++
		}
	}

	doc, err := store.Snapshot(ctx)
	if err != nil {
		log.Fatalf("snapshot: %v", err)
	}
	stats := journal.ComputeStatistics(doc, now)
	log.Printf("seeded %d entries for %d projects into %s", totalEntries, len(demoProjekte), *dataFile)
	log.Printf("average progress: %d%%", stats.AvgProgress)
}
