package journal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/struckmeier-elektro/baulog/internal/application"
	"github.com/struckmeier-elektro/baulog/internal/domain/ai"
	"github.com/struckmeier-elektro/baulog/internal/domain/analysis"
	domain "github.com/struckmeier-elektro/baulog/internal/domain/journal"
)

const (
	defaultProjekt  = "Standard Projekt"
	defaultStandort = "Baustelle"
)

// Service implements the upload-analysis pipeline and the journal use
// cases. Safe for concurrent use; the repository serializes mutations.
type Service struct {
	Repo     domain.Repository
	Images   domain.ImageStore
	Preparer ai.Preparer
	AI       ai.Client // nil means no model configured; every upload falls back
	Fallback *analysis.Fallback
	Clock    application.Clock
	Timeout  time.Duration
	Log      *zap.SugaredLogger
}

// UploadCommand carries one uploaded photo plus the free-text form fields.
type UploadCommand struct {
	Data        []byte
	Filename    string
	Projekt     string
	Standort    string
	Bemerkungen string
}

// ProcessUpload runs preprocess, remote analysis (or fallback) and the
// journal append. Once the image decodes, the upload always yields an
// entry; a failed model call degrades to the offline analysis instead of
// surfacing an error.
func (s *Service) ProcessUpload(ctx context.Context, cmd UploadCommand) (domain.Entry, error) {
	payload, err := s.Preparer.Prepare(cmd.Data)
	if err != nil {
		return domain.Entry{}, err
	}

	ref, err := s.Images.Save(ctx, cmd.Data, cmd.Filename)
	if err != nil {
		return domain.Entry{}, err
	}

	result := s.analyze(ctx, payload, cmd.Filename)

	entry := domain.Entry{
		BildPfad:         ref,
		HochgeladenAm:    s.Clock.Now(),
		Analyse:          result,
		Projekt:          cmd.Projekt,
		Standort:         cmd.Standort,
		Bemerkungen:      cmd.Bemerkungen,
		VerwendetesModel: result.AIModel,
	}
	if entry.Projekt == "" {
		entry.Projekt = defaultProjekt
	}
	if entry.Standort == "" {
		entry.Standort = defaultStandort
	}

	stored, err := s.Repo.AppendEntry(ctx, entry)
	if err != nil {
		// The entry never made it into the journal, release the image.
		if rmErr := s.Images.Remove(ctx, ref); rmErr != nil {
			s.Log.Warnw("orphaned image after failed append", "ref", ref, "error", rmErr)
		}
		return domain.Entry{}, err
	}

	s.Log.Infow("upload processed",
		"id", stored.ID,
		"projekt", stored.Projekt,
		"model", stored.VerwendetesModel,
		"fortschritt", stored.Analyse.FortschrittProzent,
	)
	return stored, nil
}

// analyze drives the vision model with a bounded deadline and degrades to
// the offline fallback on any failure. It always returns a complete result.
func (s *Service) analyze(ctx context.Context, payload ai.Payload, filename string) analysis.Analysis {
	if s.AI == nil {
		return s.Fallback.Analyze(filename, s.Clock.Now())
	}

	callCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	raw, err := s.AI.Analyze(callCtx, payload, filename)
	if err != nil {
		s.Log.Warnw("vision analysis failed, using fallback", "file", filename, "error", err)
		return s.Fallback.Analyze(filename, s.Clock.Now())
	}
	return analysis.Normalize(raw, filename, s.AI.Model(), s.Clock.Now())
}

func (s *Service) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	return s.Repo.ListEntries(ctx)
}

// DeleteEntry removes the entry and releases its stored image. A missing
// image file is not an error; the journal mutation already succeeded.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	entry, err := s.Repo.DeleteEntry(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Images.Remove(ctx, entry.BildPfad); err != nil {
		s.Log.Warnw("failed to remove image for deleted entry", "id", id, "ref", entry.BildPfad, "error", err)
	}
	return nil
}

func (s *Service) CreateProject(ctx context.Context, cmd domain.CreateProjectCommand) (domain.Project, error) {
	return s.Repo.CreateProject(ctx, cmd)
}

func (s *Service) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.Repo.ListProjects(ctx)
}

// Statistics recomputes all derived metrics from a snapshot of the store.
func (s *Service) Statistics(ctx context.Context) (domain.Statistics, error) {
	doc, err := s.Repo.Snapshot(ctx)
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.ComputeStatistics(doc, s.Clock.Now()), nil
}
