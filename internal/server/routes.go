package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spektr-org/crashlens/engine"
	"github.com/spektr-org/crashlens/internal/monitoring"
)

// registerRoutes mounts the dashboard API on r.
func (s *Server) registerRoutes(r chi.Router) {
	r.Get("/api/domain", s.domainHandler)
	r.Post("/api/sessions", s.createSessionHandler)

	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Get("/", s.withSession(s.snapshotHandler))
		r.Delete("/", s.deleteSessionHandler)
		r.Post("/facets", s.withSession(s.facetHandler))
		r.Post("/reset", s.withSession(s.resetHandler))
		r.Get("/records", s.withSession(s.filteredRecordsHandler))
		r.Get("/records/{recordID}", s.withSession(s.recordHandler))
		r.Get("/tables/{facet}", s.withSession(s.tableHandler))
	})

	r.Get("/sessions/{id}/dashboard", s.withSession(s.dashboardHandler))
}

// sessionResponse is the body returned for every session state change.
type sessionResponse struct {
	ID       string          `json:"id"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// facetRequest is a renderer's free-form facet click.
type facetRequest struct {
	Facet string `json:"facet"`
	Value string `json:"value"`
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session)

func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessions.get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) domainHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ds.Domain())
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.create()
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, Snapshot: sess.dash.Snapshot()})
}

func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.delete(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) snapshotHandler(w http.ResponseWriter, r *http.Request, sess *session) {
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Snapshot: sess.dash.Snapshot()})
}

func (s *Server) facetHandler(w http.ResponseWriter, r *http.Request, sess *session) {
	var req facetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	facet, err := engine.ParseFacet(req.Facet)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := sess.views.Facet(facet).Click(req.Value); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Snapshot: sess.dash.Snapshot()})
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request, sess *session) {
	if err := sess.dash.Dispatch(engine.ResetRequested{}); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Snapshot: sess.dash.Snapshot()})
}

func (s *Server) recordHandler(w http.ResponseWriter, r *http.Request, sess *session) {
	detail, err := sess.dash.ShowDetail(chi.URLParam(r, "recordID"))
	if errors.Is(err, engine.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// filteredRecordsHandler lists the records passing the session's filter.
func (s *Server) filteredRecordsHandler(w http.ResponseWriter, r *http.Request, sess *session) {
	writeJSON(w, http.StatusOK, engine.Materialize(sess.dash.Filtered()))
}

// tableHandler returns one facet's rows as a table, ?sort= as in ParseSortOrder.
func (s *Server) tableHandler(w http.ResponseWriter, r *http.Request, sess *session) {
	facet, err := engine.ParseFacet(chi.URLParam(r, "facet"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	order, err := engine.ParseSortOrder(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows := sess.dash.Snapshot().Rows(facet)
	engine.SortRows(rows, order)
	writeJSON(w, http.StatusOK, engine.BuildTable(engine.TitleForFacet(facet), facet, rows))
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request, sess *session) {
	var buf bytes.Buffer
	if err := sess.page.Render(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("⚠️ writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
