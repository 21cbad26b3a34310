// Package httpapi exposes the map generation pipeline over HTTP: synchronous
// generation endpoints, named-layer PNG export, and a websocket for
// streaming stage progress to long-poll clients.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"worldforge/internal/archive"
	"worldforge/internal/cache"
	"worldforge/internal/events"
	"worldforge/internal/jobstore"
	"worldforge/internal/mapgen"
	"worldforge/internal/metrics"
	"worldforge/internal/mgerrors"
)

// Server wires the generation pipeline to HTTP handlers.
type Server struct {
	mapCache  *cache.MapCache
	jobs      *jobstore.Store
	jobsCache *cache.QueryCache
	archive   *archive.Store
	publisher *events.Publisher
}

// NewServer builds a Server. jobs, jobsCache, archiveStore and publisher may
// all be nil (job history, job-lookup caching, field archiving, and event
// publishing become no-ops/misses).
func NewServer(mapCache *cache.MapCache, jobs *jobstore.Store, jobsCache *cache.QueryCache, archiveStore *archive.Store, publisher *events.Publisher) *Server {
	return &Server{mapCache: mapCache, jobs: jobs, jobsCache: jobsCache, archive: archiveStore, publisher: publisher}
}

// Routes mounts the API on a chi router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/generate", s.handleGenerate)
	r.Post("/api/rivers", s.handleRivers)
	r.Get("/api/layers/{layer}", s.handleLayer)
	r.Get("/api/jobs/{id}", s.handleGetJob)
	r.Get("/api/ws/progress", s.handleProgressWS)
}

type generateRequest struct {
	Seed   uint64        `json:"seed"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Params mapgen.Params `json:"params"`
}

type generateResponse struct {
	JobID   uuid.UUID      `json:"job_id"`
	Timings mapgen.Timings `json:"timings"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Width == 0 {
		req.Width = 2048
	}
	if req.Height == 0 {
		req.Height = 1024
	}
	if (req.Params == mapgen.Params{}) {
		req.Params = mapgen.DefaultParams()
	}

	m, timings, err := mapgen.GenerateBase(req.Seed, req.Width, req.Height, req.Params)
	if err != nil {
		mgerrors.RespondWithError(w, err)
		return
	}

	s.mapCache.Store(m, req.Seed, req.Params, timings)

	jobID := uuid.New()
	s.recordJob(r, jobID, req.Seed, req.Width, req.Height, req.Params, "generated", timings)

	if s.publisher != nil {
		_ = s.publisher.PublishMapGenerated(events.MapGenerated{
			JobID:     jobID,
			Seed:      req.Seed,
			Width:     req.Width,
			Height:    req.Height,
			Timestamp: time.Now(),
		})
	}

	respondJSON(w, http.StatusOK, generateResponse{JobID: jobID, Timings: timings})
}

func (s *Server) handleRivers(w http.ResponseWriter, r *http.Request) {
	m, seed, params, ok := s.mapCache.Load()
	if !ok {
		respondError(w, http.StatusNotFound, "no generated map in cache; call /api/generate first")
		return
	}

	flow, timing, err := mapgen.GenerateRivers(m, seed, params)
	if err != nil {
		mgerrors.RespondWithError(w, err)
		return
	}
	s.mapCache.Store(m, seed, params, append(s.mapCache.Timings(), timing))

	riverCells := 0
	for _, v := range flow.Data {
		if v > 0 {
			riverCells++
		}
	}

	jobID := uuid.New()
	if s.publisher != nil {
		_ = s.publisher.PublishRiversExtended(events.RiversExtended{
			JobID:          jobID,
			RiverCellCount: riverCells,
			Timestamp:      time.Now(),
		})
	}

	if s.archive != nil {
		fields := archive.Fields{
			JobID:         jobID,
			Width:         m.W,
			Height:        m.H,
			PlateID:       m.PlateID.Data,
			HeightField:   m.Height.Data,
			Temperature:   m.Temperature.Data,
			Precipitation: m.Precipitation.Data,
			RiverFlow:     flow.Data,
		}
		if err := s.archive.Put(r.Context(), fields); err != nil {
			log.Error().Err(err).Str("job_id", jobID.String()).Msg("httpapi: failed to archive field arrays")
		}
	}

	respondJSON(w, http.StatusOK, struct {
		Timing         mapgen.Timing `json:"timing"`
		RiverCellCount int           `json:"river_cell_count"`
	}{Timing: timing, RiverCellCount: riverCells})
}

func (s *Server) handleLayer(w http.ResponseWriter, r *http.Request) {
	layer := chi.URLParam(r, "layer")
	if !isKnownLayer(layer) {
		respondError(w, http.StatusNotFound, "unknown layer")
		return
	}

	m, _, _, ok := s.mapCache.Load()
	if !ok {
		respondError(w, http.StatusNotFound, "no generated map in cache; call /api/generate first")
		return
	}

	png, err := encodeLayer(m, layer)
	if err != nil {
		log.Error().Err(err).Str("layer", layer).Msg("httpapi: layer export failed")
		respondError(w, http.StatusInternalServerError, "failed to render layer")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	if s.jobs == nil {
		respondError(w, http.StatusServiceUnavailable, "job history not configured")
		return
	}
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "malformed job id")
		return
	}

	var job jobstore.Job
	loadJob := func() (interface{}, error) {
		return s.jobs.Get(r.Context(), id)
	}

	if s.jobsCache != nil {
		jobPtr := &job
		err := s.jobsCache.GetOrSet(r.Context(), "job:"+id.String(), jobPtr, loadJob)
		if err != nil {
			respondError(w, http.StatusNotFound, "job not found")
			return
		}
		respondJSON(w, http.StatusOK, job)
		return
	}

	got, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	respondJSON(w, http.StatusOK, got)
}

func (s *Server) recordJob(r *http.Request, id uuid.UUID, seed uint64, w, h int, p mapgen.Params, outcome string, timings mapgen.Timings) {
	if s.jobs == nil {
		return
	}
	job := jobstore.Job{
		ID:        id,
		Seed:      seed,
		Width:     w,
		Height:    h,
		Params:    p,
		Outcome:   outcome,
		Timings:   timings,
		CreatedAt: time.Now(),
	}
	if err := s.jobs.Record(r.Context(), job); err != nil {
		log.Error().Err(err).Str("job_id", id.String()).Msg("httpapi: failed to record job history")
	}
	metrics.RecordGeneration(outcome)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
