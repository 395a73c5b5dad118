package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appjournal "github.com/struckmeier-elektro/baulog/internal/application/journal"
	domain "github.com/struckmeier-elektro/baulog/internal/domain/journal"
	"github.com/struckmeier-elektro/baulog/internal/infra/images"
	"github.com/struckmeier-elektro/baulog/internal/middleware"
)

const maxUploadBytes = 10 << 20 // 10MB, matches the upload form limit

type Router struct {
	svc *appjournal.Service
}

// NewRouter wires the journal endpoints. uploadsDir, when non-empty, is
// served statically under /uploads (local image store only).
func NewRouter(svc *appjournal.Service, uploadsDir string, log *zap.SugaredLogger) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	mux.Use(middleware.RequestLogger(log))

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"store": &middleware.StoreHealthChecker{Repo: svc.Repo},
	}))

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/upload", r.wrap(r.handleUpload))
		rt.Get("/eintraege", r.wrap(r.handleListEntries))
		rt.Delete("/eintraege/{id}", r.wrap(r.handleDeleteEntry))
		rt.Post("/projekte", r.wrap(r.handleCreateProject))
		rt.Get("/projekte", r.wrap(r.handleListProjects))
		rt.Get("/statistik", r.wrap(r.handleStatistics))
	})

	if uploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
		mux.Get("/uploads/*", fs.ServeHTTP)
	}

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, domain.ErrNameRequired), errors.Is(err, images.ErrUndecodable):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /api/upload — multipart form: file field "image" plus free-text
// fields projekt, standort, bemerkungen.
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("kein Bild hochgeladen"))
		return nil
	}
	file, header, err := req.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("kein Bild hochgeladen"))
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return err
	}

	entry, err := r.svc.ProcessUpload(req.Context(), appjournal.UploadCommand{
		Data:        data,
		Filename:    header.Filename,
		Projekt:     req.FormValue("projekt"),
		Standort:    req.FormValue("standort"),
		Bemerkungen: req.FormValue("bemerkungen"),
	})
	if err != nil {
		return err
	}

	return writeJSON(w, map[string]any{
		"success": true,
		"message": "Bild erfolgreich hochgeladen und KI-Analyse durchgeführt",
		"eintrag": entry,
		"aiModel": entry.VerwendetesModel,
	})
}

// GET /api/eintraege
func (r *Router) handleListEntries(w http.ResponseWriter, req *http.Request) error {
	entries, err := r.svc.ListEntries(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, entries)
}

// DELETE /api/eintraege/{id}
func (r *Router) handleDeleteEntry(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := r.svc.DeleteEntry(req.Context(), id); err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"success": true, "message": "Eintrag gelöscht"})
}

// POST /api/projekte
func (r *Router) handleCreateProject(w http.ResponseWriter, req *http.Request) error {
	var cmd domain.CreateProjectCommand
	if err := json.NewDecoder(req.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil
	}
	project, err := r.svc.CreateProject(req.Context(), cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"success": true, "projekt": project})
}

// GET /api/projekte
func (r *Router) handleListProjects(w http.ResponseWriter, req *http.Request) error {
	projects, err := r.svc.ListProjects(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, projects)
}

// GET /api/statistik
func (r *Router) handleStatistics(w http.ResponseWriter, req *http.Request) error {
	stats, err := r.svc.Statistics(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, stats)
}
