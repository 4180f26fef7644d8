package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/access-cli/internal/classify"
	"github.com/sells-group/access-cli/internal/dashboard"
	"github.com/sells-group/access-cli/internal/model"
)

type intensityResponse struct {
	dashboard.IntensityView
	FeatureCount int `json:"feature_count"`
}

type severityResponse struct {
	dashboard.SeverityView
	FeatureCount int `json:"feature_count"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": s.dash.Loaded(),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Options())
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	metric := chi.URLParam(r, "metric")
	bins, ok := classify.Legend(metric)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown metric %q", metric))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"metric":  metric,
		"bins":    bins,
		"no_data": classify.NoData,
	})
}

func (s *Server) handleIntensity(w http.ResponseWriter, r *http.Request) {
	view, ok := s.intensity(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, intensityResponse{IntensityView: view, FeatureCount: len(view.Features)})
}

func (s *Server) handleIntensityMap(w http.ResponseWriter, r *http.Request) {
	view, ok := s.intensity(w, r)
	if !ok {
		return
	}
	s.writeMap(w, r, view.Features)
}

func (s *Server) handleSeverity(w http.ResponseWriter, r *http.Request) {
	view, ok := s.severity(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, severityResponse{SeverityView: view, FeatureCount: len(view.Features)})
}

func (s *Server) handleSeverityMap(w http.ResponseWriter, r *http.Request) {
	view, ok := s.severity(w, r)
	if !ok {
		return
	}
	s.writeMap(w, r, view.Features)
}

func (s *Server) handleCache(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.CacheStats())
}

func (s *Server) intensity(w http.ResponseWriter, r *http.Request) (dashboard.IntensityView, bool) {
	sel, ok := s.selection(w, r)
	if !ok {
		return dashboard.IntensityView{}, false
	}
	view, err := s.dash.Intensity(sel)
	if err != nil {
		s.internalError(w, r, err)
		return dashboard.IntensityView{}, false
	}
	return view, true
}

func (s *Server) severity(w http.ResponseWriter, r *http.Request) (dashboard.SeverityView, bool) {
	sel, ok := s.selection(w, r)
	if !ok {
		return dashboard.SeverityView{}, false
	}
	view, err := s.dash.Severity(sel)
	if err != nil {
		s.internalError(w, r, err)
		return dashboard.SeverityView{}, false
	}
	return view, true
}

func (s *Server) writeMap(w http.ResponseWriter, r *http.Request, features []dashboard.MapFeature) {
	data, err := dashboard.MapGeoJSON(features)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// selection parses the filter query. A missing landuse parameter selects
// every land use; landuse present with no values selects none.
func (s *Server) selection(w http.ResponseWriter, r *http.Request) (model.Selection, bool) {
	q := r.URL.Query()

	landUses := model.LandUses()
	if raw, present := q["landuse"]; present {
		landUses = make([]string, 0, len(raw))
		for _, v := range raw {
			for _, lu := range strings.Split(v, ",") {
				lu = strings.TrimSpace(lu)
				if lu == "" {
					continue
				}
				if !model.IsLandUse(lu) {
					writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown land use %q", lu))
					return model.Selection{}, false
				}
				landUses = append(landUses, lu)
			}
		}
	}

	region := strings.TrimSpace(q.Get("region"))
	if !s.dash.HasRegion(region) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown region %q", region))
		return model.Selection{}, false
	}

	return model.NewSelection(landUses, region), true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("server: build view",
		zap.String("request_id", RequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// writeJSON encodes v before committing status, so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
