package http

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/couchcryptid/air-quality-dashboard/internal/adapter/charts"
	"github.com/couchcryptid/air-quality-dashboard/internal/domain"
)

// parseSelection reads location, start and end from the query string.
// Missing values fall back to the first location and the dataset bounds.
func (s *Server) parseSelection(r *http.Request) (domain.Selection, error) {
	q := r.URL.Query()
	bounds := s.dash.Bounds()
	sel := domain.Selection{Range: bounds}

	if name := q.Get("location"); name != "" {
		loc, err := domain.ParseLocation(name)
		if err != nil {
			return sel, err
		}
		sel.Location = loc
	} else if locs := s.dash.Locations(); len(locs) > 0 {
		sel.Location = locs[0].Name
	}

	if v := q.Get("start"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return sel, err
		}
		sel.Range.Start = d
	}
	if v := q.Get("end"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			return sel, err
		}
		sel.Range.End = d
	}
	return sel, nil
}

func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Locations())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sel, err := s.parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.dash.Report(sel)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("name"), ".png")
	if !ok {
		http.NotFound(w, r)
		return
	}
	kind, err := charts.ParseKind(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	sel, err := s.parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := s.dash.View(sel)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := charts.Render(&buf, kind, view); err != nil {
		s.logger.Error("chart render failed", "kind", kind, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	s.metrics.ChartRenders.WithLabelValues(string(kind)).Inc()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, err := s.parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report, err := s.dash.Report(sel)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	// Render into a buffer so a template failure can still produce a 500.
	var buf bytes.Buffer
	if err := renderDashboard(&buf, newDashboardPage(s.dash.Locations(), s.dash.Bounds(), sel, report)); err != nil {
		s.logger.Error("dashboard template render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnknownLocation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("report failed", "error", err)
	writeError(w, http.StatusInternalServerError, "failed to compute report")
}
