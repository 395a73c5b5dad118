// Package jsonfile persists the whole journal as one JSON document.
// Every mutation is a read-modify-write of the entire document, so all
// mutating operations are serialized behind a single mutex and writes go
// through a temp file plus rename to stay crash-safe.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/struckmeier-elektro/baulog/internal/domain/journal"
)

type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New opens (or initializes) the document at path.
func New(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	// Fail fast on an unreadable or corrupt document.
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() (journal.Document, error) {
	var doc journal.Document
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return journal.Document{Eintraege: []journal.Entry{}, Projekte: []journal.Project{}}, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read journal document: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse journal document: %w", err)
	}
	if doc.Eintraege == nil {
		doc.Eintraege = []journal.Entry{}
	}
	if doc.Projekte == nil {
		doc.Projekte = []journal.Project{}
	}
	return doc, nil
}

// save writes the full document atomically: temp file in the same
// directory, then rename over the old document.
func (s *Store) save(doc journal.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode journal document: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write journal document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace journal document: %w", err)
	}
	return nil
}

// newID builds a time-based identifier that stays unique even when two
// mutations land in the same millisecond.
func (s *Store) newID() string {
	short := strings.SplitN(uuid.New().String(), "-", 2)[0]
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), short)
}

func (s *Store) AppendEntry(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return journal.Entry{}, err
	}
	if e.ID == "" {
		e.ID = s.newID()
	}
	doc.Eintraege = append([]journal.Entry{e}, doc.Eintraege...)
	if err := s.save(doc); err != nil {
		return journal.Entry{}, err
	}
	return e, nil
}

func (s *Store) ListEntries(ctx context.Context) ([]journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Eintraege, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id string) (journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return journal.Entry{}, err
	}
	for i, e := range doc.Eintraege {
		if e.ID != id {
			continue
		}
		doc.Eintraege = append(doc.Eintraege[:i], doc.Eintraege[i+1:]...)
		if err := s.save(doc); err != nil {
			return journal.Entry{}, err
		}
		return e, nil
	}
	return journal.Entry{}, journal.ErrNotFound
}

func (s *Store) CreateProject(ctx context.Context, cmd journal.CreateProjectCommand) (journal.Project, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return journal.Project{}, journal.ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return journal.Project{}, err
	}
	now := s.now()
	p := journal.Project{
		ID:           s.newID(),
		Name:         cmd.Name,
		Adresse:      cmd.Adresse,
		Beschreibung: cmd.Beschreibung,
		StartDatum:   cmd.StartDatum,
		ErstelltAm:   now,
		Status:       journal.ProjectAktiv,
		Fortschritt:  cmd.Fortschritt,
		Kunde:        cmd.Kunde,
	}
	if p.StartDatum == "" {
		p.StartDatum = now.Format(time.RFC3339)
	}
	doc.Projekte = append(doc.Projekte, p)
	if err := s.save(doc); err != nil {
		return journal.Project{}, err
	}
	return p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]journal.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Projekte, nil
}

func (s *Store) Snapshot(ctx context.Context) (journal.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}
