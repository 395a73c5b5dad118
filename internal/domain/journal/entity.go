package journal

import (
	"time"

	"github.com/struckmeier-elektro/baulog/internal/domain/analysis"
)

// Project status values.
const (
	ProjectAktiv         = "aktiv"
	ProjectAbgeschlossen = "abgeschlossen"
)

// Entry is one durable record of an uploaded jobsite photo and its
// analysis. Entries are never mutated after creation, only deleted.
type Entry struct {
	ID               string            `json:"id"`
	BildPfad         string            `json:"bildPfad"`
	HochgeladenAm    time.Time         `json:"hochgeladenAm"`
	Analyse          analysis.Analysis `json:"analyse"`
	Projekt          string            `json:"projekt"`
	Standort         string            `json:"standort"`
	Bemerkungen      string            `json:"bemerkungen"`
	VerwendetesModel string            `json:"verwendetesModel"`
}

// Project groups journal entries by a free-text name; there is no
// referential integrity between entries and projects. Fortschritt is a
// reference value used only when seeding demo analyses.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Adresse      string    `json:"adresse"`
	Beschreibung string    `json:"beschreibung"`
	StartDatum   string    `json:"startDatum"`
	ErstelltAm   time.Time `json:"erstelltAm"`
	Status       string    `json:"status"`
	Fortschritt  int       `json:"fortschritt,omitempty"`
	Kunde        string    `json:"kunde,omitempty"`
}

// Document is the aggregate persisted as one JSON file: entries newest
// first, projects in insertion order.
type Document struct {
	Eintraege []Entry   `json:"eintraege"`
	Projekte  []Project `json:"projekte"`
}

// CreateProjectCommand carries the caller-supplied fields for a new
// project. Fortschritt and Kunde are optional and mainly used when seeding
// demo data.
type CreateProjectCommand struct {
	Name         string `json:"name"`
	Adresse      string `json:"adresse"`
	Beschreibung string `json:"beschreibung"`
	StartDatum   string `json:"startDatum"`
	Fortschritt  int    `json:"fortschritt,omitempty"`
	Kunde        string `json:"kunde,omitempty"`
}
