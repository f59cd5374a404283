package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/katalvlaran/netxplore/community"
	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/customize"
	"github.com/katalvlaran/netxplore/pipeline"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	q := &query{v: r.URL.Query()}
	req := pipeline.AnalyzeRequest{
		SourceID:  chi.URLParam(r, "sourceID"),
		Filter:    q.filterOptions(),
		Anonymize: q.anonymization(),
		Settings:  q.settings(),
	}

	res, err := s.eng.Analyze(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res.Notes = append(q.notes, res.Notes...)
	s.obs.ObserveGraph(len(res.Nodes))

	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) communities(w http.ResponseWriter, r *http.Request) {
	q := &query{v: r.URL.Query()}
	req := pipeline.CommunitiesRequest{
		SourceID:  chi.URLParam(r, "sourceID"),
		Filter:    q.filterOptions(),
		Anonymize: q.anonymization(),
		Algorithm: community.Algorithm(q.str("algorithm")),
	}

	res, err := s.eng.Communities(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res.Notes = append(q.notes, res.Notes...)

	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	q := &query{v: r.URL.Query()}
	original, comparison := q.str("original"), q.str("comparison")
	if original == "" || comparison == "" {
		s.respondError(w, r, fmt.Errorf("%w: original and comparison are required", errBadRequest))
		return
	}
	opts, err := q.compareOptions()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.eng.Compare(r.Context(), pipeline.CompareRequest{
		Original:   original,
		Comparison: comparison,
		Filter:     q.filterOptions(),
		Anonymize:  q.anonymization(),
		Options:    opts,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	res.Notes = append(q.notes, res.Notes...)

	s.respondJSON(w, http.StatusOK, res)
}

// customizeRequest is the body of POST /api/customize. Omitted settings
// keep their defaults.
type customizeRequest struct {
	Graph    *core.Graph                     `json:"graph"`
	Settings customize.VisualizationSettings `json:"settings"`
}

func (s *Server) customize(w http.ResponseWriter, r *http.Request) {
	body := customizeRequest{Settings: customize.DefaultSettings()}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	if body.Graph == nil {
		s.respondError(w, r, fmt.Errorf("%w: graph is required", errBadRequest))
		return
	}
	if err := body.Graph.Validate(); err != nil {
		s.respondError(w, r, err)
		return
	}

	g, err := s.eng.Customize(r.Context(), body.Graph, body.Settings)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, g)
}

func (s *Server) listSources(w http.ResponseWriter, r *http.Request) {
	srcs, err := s.store.ListSources(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, srcs)
}

func (s *Server) importSource(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	src, err := s.store.ImportJSON(r.Context(), name, http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, src)
}

func (s *Server) deleteSource(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSource(r.Context(), chi.URLParam(r, "sourceID")); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
