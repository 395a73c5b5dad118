package journal

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/struckmeier-elektro/baulog/internal/domain/ai"
	"github.com/struckmeier-elektro/baulog/internal/domain/analysis"
	domain "github.com/struckmeier-elektro/baulog/internal/domain/journal"
	"github.com/struckmeier-elektro/baulog/internal/infra/db/jsonfile"
)

var fixedTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return fixedTime }

type stubPreparer struct{ err error }

func (s stubPreparer) Prepare(raw []byte) (ai.Payload, error) {
	if s.err != nil {
		return ai.Payload{}, s.err
	}
	return ai.Payload{DataURI: "data:image/jpeg;base64,xxxx", MediaType: "image/jpeg"}, nil
}

type stubAI struct {
	reply string
	err   error
}

func (s stubAI) Analyze(ctx context.Context, img ai.Payload, filename string) (string, error) {
	return s.reply, s.err
}

func (s stubAI) Model() string { return "gpt-4o" }

type fakeImageStore struct {
	mu      sync.Mutex
	saved   []string
	removed []string
}

func (f *fakeImageStore) Save(ctx context.Context, data []byte, originalName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ref := "/uploads/" + originalName
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *fakeImageStore) Remove(ctx context.Context, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, ref)
	return nil
}

func newTestService(t *testing.T, client ai.Client) (*Service, *fakeImageStore) {
	t.Helper()
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "bautagebuch.json"))
	require.NoError(t, err)

	imgs := &fakeImageStore{}
	return &Service{
		Repo:     store,
		Images:   imgs,
		Preparer: stubPreparer{},
		AI:       client,
		Fallback: analysis.NewFallback(rand.NewSource(1)),
		Clock:    fixedClock{},
		Timeout:  time.Second,
		Log:      zap.NewNop().Sugar(),
	}, imgs
}

func TestProcessUpload_SuccessPath(t *testing.T) {
	reply := "Hier die Analyse:\n```json\n{\"fortschrittProzent\": 72, \"erkannteElemente\": [\"Kabel verlegt\"]}\n```"
	svc, _ := newTestService(t, stubAI{reply: reply})

	entry, err := svc.ProcessUpload(context.Background(), UploadCommand{
		Data:     []byte("fake"),
		Filename: "baustelle.jpg",
		Projekt:  "Wohnhaus",
	})
	require.NoError(t, err)

	assert.Equal(t, 72, entry.Analyse.FortschrittProzent)
	assert.Equal(t, analysis.StatusInArbeit, entry.Analyse.Status)
	assert.Equal(t, "gpt-4o", entry.VerwendetesModel)
	assert.Equal(t, "Wohnhaus", entry.Projekt)
	assert.NotEmpty(t, entry.ID)

	entries, err := svc.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestProcessUpload_ModelFailureFallsBack(t *testing.T) {
	svc, _ := newTestService(t, stubAI{err: ai.ErrUnavailable})

	entry, err := svc.ProcessUpload(context.Background(), UploadCommand{
		Data:     []byte("fake"),
		Filename: "baustelle.jpg",
	})
	require.NoError(t, err, "a failed model call must not fail the upload")

	assert.Equal(t, analysis.FallbackModel, entry.VerwendetesModel)
	assert.GreaterOrEqual(t, entry.Analyse.FortschrittProzent, 0)
	assert.LessOrEqual(t, entry.Analyse.FortschrittProzent, 100)
	assert.NotEmpty(t, entry.Analyse.ErkannteElemente)

	entries, err := svc.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestProcessUpload_NoModelConfigured(t *testing.T) {
	svc, _ := newTestService(t, nil)

	entry, err := svc.ProcessUpload(context.Background(), UploadCommand{
		Data:     []byte("fake"),
		Filename: "baustelle.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, analysis.FallbackModel, entry.VerwendetesModel)
}

func TestProcessUpload_UndecodableImageIsFatal(t *testing.T) {
	svc, imgs := newTestService(t, stubAI{reply: "{}"})
	bad := errors.New("bild konnte nicht verarbeitet werden")
	svc.Preparer = stubPreparer{err: bad}

	_, err := svc.ProcessUpload(context.Background(), UploadCommand{
		Data:     []byte("not an image"),
		Filename: "kaputt.bin",
	})
	assert.ErrorIs(t, err, bad)
	assert.Empty(t, imgs.saved, "nothing should be stored for an undecodable upload")

	entries, listErr := svc.ListEntries(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, entries)
}

func TestProcessUpload_DefaultsForEmptyFields(t *testing.T) {
	svc, _ := newTestService(t, nil)

	entry, err := svc.ProcessUpload(context.Background(), UploadCommand{
		Data:     []byte("fake"),
		Filename: "baustelle.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Standard Projekt", entry.Projekt)
	assert.Equal(t, "Baustelle", entry.Standort)
}

func TestProcessUpload_ConcurrentUploads(t *testing.T) {
	svc, _ := newTestService(t, stubAI{reply: `{"fortschrittProzent": 60}`})

	const n = 3
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ProcessUpload(context.Background(), UploadCommand{
				Data:     []byte("fake"),
				Filename: "baustelle.jpg",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries, err := svc.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, n)

	ids := map[string]bool{}
	for _, e := range entries {
		ids[e.ID] = true
	}
	assert.Len(t, ids, n, "every entry needs a distinct identifier")
}

func TestDeleteEntry_ReleasesImage(t *testing.T) {
	svc, imgs := newTestService(t, nil)

	entry, err := svc.ProcessUpload(context.Background(), UploadCommand{
		Data:     []byte("fake"),
		Filename: "baustelle.jpg",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(context.Background(), entry.ID))
	assert.Equal(t, []string{entry.BildPfad}, imgs.removed)

	err = svc.DeleteEntry(context.Background(), entry.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatistics_FromSnapshot(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	t.Run("empty store yields zeroes", func(t *testing.T) {
		stats, err := svc.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalImages)
		assert.Equal(t, 0, stats.AvgProgress)
	})

	t.Run("counts entries and projects", func(t *testing.T) {
		_, err := svc.CreateProject(ctx, domain.CreateProjectCommand{Name: "Wohnhaus"})
		require.NoError(t, err)
		_, err = svc.ProcessUpload(ctx, UploadCommand{Data: []byte("fake"), Filename: "a.jpg"})
		require.NoError(t, err)

		stats, err := svc.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalImages)
		assert.Equal(t, 1, stats.TotalProjects)
		assert.Equal(t, 1, stats.ProjectsByStatus[domain.ProjectAktiv])
		assert.Equal(t, 1, stats.AIModelUsage[analysis.FallbackModel])
	})
}
